package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessage carries a persisted direct message to its recipient or
	// back to its sender as an echo.
	EventMessage EventKind = iota
	// EventPresence notifies clients that a user went online or offline.
	EventPresence
	// EventError reports a session-local error to the offending client.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Message  *Message
	Presence *PresenceEvent
	Error    *CoreError
}
