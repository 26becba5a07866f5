package core

import "github.com/rs/zerolog"

// Notifier fans presence transitions out to every registered connection.
type Notifier struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewNotifier constructs a presence notifier over the given registry.
func NewNotifier(registry *Registry, logger *zerolog.Logger) *Notifier {
	return &Notifier{registry: registry, log: logger}
}

// Announce broadcasts an online/offline transition to every handle in the
// registry snapshot taken at call time. Delivery is best-effort: a failed
// send is logged and suppressed, and the failing entry is NOT pruned — a
// broken connection keeps its registry entry until its own read loop fails.
func (n *Notifier) Announce(userID string, online bool) {
	ev := &Event{
		Kind:     EventPresence,
		Presence: &PresenceEvent{User: userID, Online: online},
	}

	for _, c := range n.registry.Snapshot() {
		if err := c.Send(ev); err != nil {
			n.log.Debug().
				Err(err).
				Str("user", userID).
				Str("recipient", c.UserID).
				Bool("online", online).
				Msg("presence send failed")
		}
	}
}
