package editor

import "errors"

var (
	// ErrNoImage is returned by photo operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrNoTemplate is returned when exporting a poster before a template is chosen.
	ErrNoTemplate = errors.New("no template selected")

	// ErrInvalidRecipient is returned when a share recipient is empty or malformed.
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrShareFailed wraps any relay failure.
	ErrShareFailed = errors.New("failed to share image")
)
