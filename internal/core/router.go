package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/proto"
	"github.com/antonkazakov/dmline-server/internal/store"
)

// MessageRecorder is the slice of the store the router needs. Messages must
// be durably recorded before any live delivery is attempted.
type MessageRecorder interface {
	// SaveMessage persists a message; on success msg.CreatedAt holds the
	// server-assigned timestamp.
	SaveMessage(ctx context.Context, msg *store.Message) error
}

// Router drives the per-message lifecycle: decode, persist, deliver to the
// recipient if reachable, and always echo back to the sender.
type Router struct {
	registry *Registry
	recorder MessageRecorder
	log      *zerolog.Logger
}

// NewRouter constructs a message router.
func NewRouter(registry *Registry, recorder MessageRecorder, logger *zerolog.Logger) *Router {
	return &Router{registry: registry, recorder: recorder, log: logger}
}

// Handle processes one inbound payload from sender. It returns a *CoreError
// for payload and storage problems; both are recoverable, the session stays
// online and reports the error to its client. Delivery failures are
// suppressed here and never surface to the sender.
func (rt *Router) Handle(ctx context.Context, sender *Client, raw []byte) *CoreError {
	in, err := proto.DecodeMessage(raw)
	if err != nil {
		if errors.Is(err, proto.ErrMissingField) {
			return coreError(ErrCodeBadPayload, "from_user, to_user and content are required")
		}
		return coreError(ErrCodeBadPayload, "malformed message payload")
	}
	if in.FromUser != sender.UserID {
		return coreError(ErrCodeSenderMismatch, "from_user does not match the connection identity")
	}

	rec := &store.Message{
		FromUser: in.FromUser,
		ToUser:   in.ToUser,
		Content:  in.Content,
		FileData: in.FileData,
		FileName: in.FileName,
		FileType: in.FileType,
	}
	if err := rt.recorder.SaveMessage(ctx, rec); err != nil {
		rt.log.Error().
			Err(err).
			Str("from", in.FromUser).
			Str("to", in.ToUser).
			Msg("save message failed")
		return coreError(ErrCodeStorageFailed, "message was not saved")
	}

	msg := &Message{
		From:      rec.FromUser,
		To:        rec.ToUser,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
	}
	if rec.FileData != "" {
		msg.Attachment = &Attachment{
			Data:      rec.FileData,
			Name:      rec.FileName,
			MediaType: rec.FileType,
		}
	}
	ev := &Event{Kind: EventMessage, Message: msg}

	// Persisted, now deliver. Recipient first, best-effort.
	if peer, ok := rt.registry.Lookup(msg.To); ok {
		if err := peer.Send(ev); err != nil {
			rt.log.Debug().
				Err(err).
				Str("to", msg.To).
				Msg("recipient delivery failed")
		}
	}

	// Echo regardless of recipient reachability so the sender sees the
	// authoritative timestamp.
	if err := sender.Send(ev); err != nil {
		rt.log.Debug().
			Err(err).
			Str("from", msg.From).
			Msg("sender echo failed")
	}

	return nil
}
