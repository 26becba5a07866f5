package proto

import (
	"encoding/json"
	"errors"
	"time"
)

// Outbound discriminator values. Message units carry no type tag; clients
// recognize them by the absence of "type".
const (
	OutboundTypeUserStatus = "user_status"
	OutboundTypeError      = "error"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingField     = errors.New("missing required field")
)

// MessageIn is one direct message as read from the client socket.
// file_data/file_name/file_type travel together or not at all.
type MessageIn struct {
	FromUser string `json:"from_user"`
	ToUser   string `json:"to_user"`
	Content  string `json:"content"`
	FileData string `json:"file_data,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

// DecodeMessage parses an inbound frame and checks required fields.
func DecodeMessage(raw []byte) (*MessageIn, error) {
	var in MessageIn
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, ErrMalformedPayload
	}
	if in.FromUser == "" || in.ToUser == "" || in.Content == "" {
		return nil, ErrMissingField
	}
	return &in, nil
}

// MessageOut is the canonical message unit written to recipients and echoed
// to senders. Timestamp is server-assigned at persistence time.
type MessageOut struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	FileData  string    `json:"file_data,omitempty"`
	FileName  string    `json:"file_name,omitempty"`
	FileType  string    `json:"file_type,omitempty"`
}

// UserStatus announces a presence transition to every connected client.
type UserStatus struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// Error is a protocol-level error unit written back to the offending client.
type Error struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
