package core

import (
	"github.com/rs/zerolog"
)

// Hub is the connection hub: it owns the registry, the presence notifier
// and the message router, and hands out sessions to the transport layer.
// The transport never touches the registry directly.
type Hub struct {
	registry *Registry
	notifier *Notifier
	router   *Router
	log      *zerolog.Logger
}

// NewHub wires the hub over a message recorder.
func NewHub(recorder MessageRecorder, logger *zerolog.Logger) *Hub {
	registry := NewRegistry()
	return &Hub{
		registry: registry,
		notifier: NewNotifier(registry, logger),
		router:   NewRouter(registry, recorder, logger),
		log:      logger,
	}
}

// Connect binds a user identity to a fresh connection handle, registers it
// (replacing any previous connection for the same user) and announces the
// user online. The returned session is Online.
func (h *Hub) Connect(userID, connID string) *Session {
	s := &Session{
		client:   NewClient(userID, connID),
		registry: h.registry,
		notifier: h.notifier,
		router:   h.router,
		state:    StateConnecting,
	}
	s.start()

	h.log.Info().Str("user", userID).Str("conn_id", connID).Msg("user connected")
	return s
}

// Disconnect tears down a session: deregister, announce offline, release.
func (h *Hub) Disconnect(s *Session) {
	s.Close()
	h.log.Info().Str("user", s.client.UserID).Str("conn_id", s.client.ConnID).Msg("user disconnected")
}

// Online reports whether a user currently has a live connection.
func (h *Hub) Online(userID string) bool {
	return h.registry.Online(userID)
}

// OnlineUsers returns the currently reachable user set.
func (h *Hub) OnlineUsers() []string {
	return h.registry.Users()
}
