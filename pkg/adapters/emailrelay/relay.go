// Package emailrelay sends shared images through the EmailJS REST API.
package emailrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/picx/pkg/ports"
)

// DefaultEndpoint is the EmailJS send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned when service, template or public key is missing.
var ErrNotConfigured = errors.New("email relay is not configured")

// Options identifies the EmailJS account and template.
type Options struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Timeout    time.Duration
}

// Configured reports whether the service, template and public key are set.
func (o Options) Configured() bool {
	return o.ServiceID != "" && o.TemplateID != "" && o.PublicKey != ""
}

// Relay implements ports.Relay over HTTP.
type Relay struct {
	opts   Options
	client *http.Client
	logger ports.Logger
}

// New creates a relay. A zero Timeout means 20 seconds.
func New(opts Options, logger ports.Logger) *Relay {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Relay{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger.WithComponent("relay"),
	}
}

type payload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail  string `json:"to_email"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

// Send posts the share request to the relay. It does not retry.
func (r *Relay) Send(ctx context.Context, req ports.ShareRequest) error {
	if !r.opts.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload{
		ServiceID:  r.opts.ServiceID,
		TemplateID: r.opts.TemplateID,
		UserID:     r.opts.PublicKey,
		TemplateParams: templateParams{
			ToEmail:  req.Recipient,
			Message:  req.Message,
			ImageURL: req.ImageDataURI,
		},
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	r.logger.Debug("Posting %d bytes to %s", len(body), r.opts.Endpoint)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("relay responded %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}
	return nil
}

// Ensure Relay implements ports.Relay
var _ ports.Relay = (*Relay)(nil)
