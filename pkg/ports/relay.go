package ports

import "context"

// ShareRequest is the payload handed to the email relay.
type ShareRequest struct {
	Recipient    string
	Message      string
	ImageDataURI string
}

// Relay sends an image to a recipient through a transactional email service.
type Relay interface {
	// Send delivers the request. Any error means the share failed.
	Send(ctx context.Context, req ShareRequest) error
}
