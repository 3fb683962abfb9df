// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/picx/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveDescriptorJSON does nothing.
func (s *Sink) SaveDescriptorJSON(data []byte) error {
	return nil
}

// SaveCropJSON does nothing.
func (s *Sink) SaveCropJSON(data []byte) error {
	return nil
}

// SaveSceneJSON does nothing.
func (s *Sink) SaveSceneJSON(data []byte) error {
	return nil
}

// SaveCrop does nothing.
func (s *Sink) SaveCrop(index int, img image.Image) error {
	return nil
}

// SaveExport does nothing.
func (s *Sink) SaveExport(name string, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
