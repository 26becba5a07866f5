package http

import (
	"github.com/antonkazakov/dmline-server/internal/core"
	"github.com/antonkazakov/dmline-server/internal/proto"
)

func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventMessage:
		out := proto.MessageOut{
			From:      event.Message.From,
			To:        event.Message.To,
			Content:   event.Message.Content,
			Timestamp: event.Message.CreatedAt,
		}
		if att := event.Message.Attachment; att != nil {
			out.FileData = att.Data
			out.FileName = att.Name
			out.FileType = att.MediaType
		}
		return out
	case core.EventPresence:
		return proto.UserStatus{
			Type:     proto.OutboundTypeUserStatus,
			Username: event.Presence.User,
			Online:   event.Presence.Online,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Error{Type: proto.OutboundTypeError, Code: "unknown", Msg: "unknown error"}
		}
		return proto.Error{Type: proto.OutboundTypeError, Code: event.Error.Code, Msg: event.Error.Message}
	default:
		return proto.Error{Type: proto.OutboundTypeError, Code: "unknown", Msg: "unknown event"}
	}
}
