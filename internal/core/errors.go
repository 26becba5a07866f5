package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeBadPayload     = "bad_payload"
	ErrCodeSenderMismatch = "sender_mismatch"
	ErrCodeStorageFailed  = "storage_failed"
)

var (
	// ErrClientClosed is returned by Client.Send after the client's event
	// channel has been closed by its owning session.
	ErrClientClosed = errors.New("client closed")
	// ErrSlowConsumer is returned by Client.Send when the client's event
	// buffer is full. The event is dropped rather than blocking the caller.
	ErrSlowConsumer = errors.New("slow consumer")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
