package core

import "sync"

// Registry maps user identities to their single live connection. It is the
// only mutable state shared between sessions; every read and write goes
// through its lock. Empty at process start, no persistence across restarts.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register inserts or overwrites the entry for the client's user. Last
// writer wins: a reconnect replaces the previous handle without closing it;
// the replaced session notices on its own transport and cleans up via
// UnregisterClient.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.UserID] = c
}

// Unregister removes the entry for the user if present. No-op when absent.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, userID)
}

// UnregisterClient removes the entry only if it still belongs to the given
// client, and reports whether it did. A session that lost its entry to a
// reconnect must not evict its successor.
func (r *Registry) UnregisterClient(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.clients[c.UserID]; ok && current == c {
		delete(r.clients, c.UserID)
		return true
	}
	return false
}

// Lookup returns the live handle for a user, if any.
func (r *Registry) Lookup(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[userID]
	return c, ok
}

// Online reports whether a user currently has a registered connection.
func (r *Registry) Online(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Snapshot returns the handles registered at call time. The slice is a
// copy; broadcasts iterate it without holding the lock, so a client that
// joins or leaves mid-broadcast may or may not be included.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients
}

// Users returns the set of currently reachable user identities.
func (r *Registry) Users() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.clients))
	for id := range r.clients {
		users = append(users, id)
	}
	return users
}
