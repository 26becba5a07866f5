package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/proto"
	"github.com/antonkazakov/dmline-server/internal/store"
)

// MessageHandlers provides HTTP handlers for conversation history.
type MessageHandlers struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(st store.MessageStore, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		store: st,
		log:   logger,
	}
}

// ConversationResponse wraps a conversation's messages, oldest first.
type ConversationResponse struct {
	Messages []proto.MessageOut `json:"messages"`
}

// GetConversation returns the full history between the caller and a peer.
// GET /api/messages/:user/:peer
func (h *MessageHandlers) GetConversation(c *gin.Context) {
	user := c.Param("user")
	peer := c.Param("peer")

	// The caller may only read conversations they are part of.
	if user != c.GetString(ContextKeyUsername) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "cannot read another user's conversation"})
		return
	}

	messages, err := h.store.ListConversation(c.Request.Context(), user, peer)
	if err != nil {
		h.log.Error().Err(err).Str("user", user).Str("peer", peer).Msg("failed to list conversation")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := ConversationResponse{Messages: make([]proto.MessageOut, 0, len(messages))}
	for _, m := range messages {
		response.Messages = append(response.Messages, proto.MessageOut{
			From:      m.FromUser,
			To:        m.ToUser,
			Content:   m.Content,
			Timestamp: m.CreatedAt,
			FileData:  m.FileData,
			FileName:  m.FileName,
			FileType:  m.FileType,
		})
	}

	c.JSON(http.StatusOK, response)
}
