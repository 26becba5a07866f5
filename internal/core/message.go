package core

import "time"

// Message is the domain model for one direct message after persistence.
type Message struct {
	From       string
	To         string
	Content    string
	Attachment *Attachment
	CreatedAt  time.Time
}

// Attachment is an optional file payload carried inside a message.
type Attachment struct {
	Data      string // base64
	Name      string
	MediaType string
}

// PresenceEvent describes one online/offline transition. It is never stored;
// it exists only for the duration of a broadcast.
type PresenceEvent struct {
	User   string
	Online bool
}
