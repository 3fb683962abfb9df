package editor

import "sync"

// Ticket identifies one load request.
type Ticket uint64

// Sequence hands out increasing tickets so that only the latest load
// request may apply its result. Safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	latest Ticket
}

// Begin issues a ticket newer than every ticket issued before.
func (s *Sequence) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Current reports whether t is still the latest ticket.
func (s *Sequence) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.latest
}
