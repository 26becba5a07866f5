package store

import (
	"context"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Message represents a persisted direct message between two users.
// FileData holds a base64 attachment payload; FileName and FileType
// describe it and are empty when the message has no attachment.
type Message struct {
	ID        int64
	FromUser  string
	ToUser    string
	Content   string
	FileData  string
	FileName  string
	FileType  string
	CreatedAt time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// UserExists reports whether a username is registered.
	UserExists(ctx context.Context, username string) (bool, error)

	// ListUsers returns all users except the given one, ordered by username.
	ListUsers(ctx context.Context, exceptUsername string) ([]*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage durably records a message. On success msg.ID and
	// msg.CreatedAt are set; CreatedAt is assigned by the store and is
	// non-decreasing in insertion order.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListConversation returns all messages exchanged between two users,
	// in either direction, oldest first.
	ListConversation(ctx context.Context, userA, userB string) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
