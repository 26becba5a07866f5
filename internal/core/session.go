package core

import (
	"context"
	"sync"
)

// SessionState is the lifecycle position of a connection session.
type SessionState int

const (
	// StateConnecting is the initial state before registration.
	StateConnecting SessionState = iota
	// StateOnline means the session is registered and processing payloads.
	StateOnline
	// StateClosing means teardown has started.
	StateClosing
	// StateClosed is terminal; all session resources are released.
	StateClosed
)

// Session owns one connection's lifetime: it registers the client on start,
// drives the router for every inbound payload, and on close deregisters and
// announces the user offline. Each live connection has exactly one session;
// consistency of "who is online" emerges from many sessions mutating the one
// shared registry.
type Session struct {
	client   *Client
	registry *Registry
	notifier *Notifier
	router   *Router

	mu    sync.Mutex
	state SessionState
}

// Client returns the connection handle owned by this session.
func (s *Session) Client() *Client {
	return s.client
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// start moves Connecting -> Online: register then announce. The two side
// effects are not atomic with respect to other sessions' broadcasts.
func (s *Session) start() {
	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.state = StateOnline
	s.mu.Unlock()

	s.registry.Register(s.client)
	s.notifier.Announce(s.client.UserID, true)
}

// HandleInbound routes one payload. A non-nil *CoreError is recoverable:
// the caller reports it to the client and the session stays Online. Only
// the transport itself can take the session out of Online.
func (s *Session) HandleInbound(ctx context.Context, raw []byte) *CoreError {
	s.mu.Lock()
	online := s.state == StateOnline
	s.mu.Unlock()
	if !online {
		return coreError(ErrCodeBadPayload, "session is not online")
	}

	return s.router.Handle(ctx, s.client, raw)
}

// Close moves Online -> Closing -> Closed: deregister, announce offline,
// release the client. Idempotent; late calls after a reconnect replaced the
// registry entry do not evict the successor, but the offline announcement
// is still made for this session's departure.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosing || s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosing
	s.mu.Unlock()

	s.registry.UnregisterClient(s.client)
	s.notifier.Announce(s.client.UserID, false)
	s.client.Close()

	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
}
