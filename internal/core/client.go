package core

import "sync"

// Client is one live connection bound to a user identity, as seen by the
// core layer. The transport's write loop drains Events; nothing in the core
// ever blocks on a client.
type Client struct {
	UserID string
	ConnID string

	mu     sync.Mutex
	events chan *Event
	closed bool
}

// NewClient constructs a client with a buffered event channel.
func NewClient(userID, connID string) *Client {
	return &Client{
		UserID: userID,
		ConnID: connID,
		events: make(chan *Event, 16),
	}
}

// Events exposes the channel the transport write loop consumes.
func (c *Client) Events() <-chan *Event {
	return c.events
}

// Send enqueues an event without blocking. It fails with ErrClientClosed
// after Close, or ErrSlowConsumer when the buffer is full; callers treat
// both as a suppressed delivery failure.
func (c *Client) Send(ev *Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.events <- ev:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Close closes the event channel. Safe to call more than once; sends after
// Close fail instead of panicking.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}
