package mocks

import (
	"context"
	"sync"

	"github.com/user/picx/pkg/ports"
)

// Relay is a mock implementation of ports.Relay.
type Relay struct {
	SendFunc func(ctx context.Context, req ports.ShareRequest) error

	mu    sync.Mutex
	Calls []ports.ShareRequest
}

func (m *Relay) Send(ctx context.Context, req ports.ShareRequest) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return nil
}

var _ ports.Relay = (*Relay)(nil)
