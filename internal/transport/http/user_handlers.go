package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/core"
	"github.com/antonkazakov/dmline-server/internal/store"
)

// UserHandlers provides HTTP handlers for the user directory.
type UserHandlers struct {
	store store.UserStore
	hub   *core.Hub
	log   *zerolog.Logger
}

// NewUserHandlers creates a new user handlers instance.
func NewUserHandlers(st store.UserStore, hub *core.Hub, logger *zerolog.Logger) *UserHandlers {
	return &UserHandlers{
		store: st,
		hub:   hub,
		log:   logger,
	}
}

// UserResponse represents a user in API responses; Online comes from the
// hub's registry at request time.
type UserResponse struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ListUsers returns every user except the caller, with live presence.
// GET /api/users
func (h *UserHandlers) ListUsers(c *gin.Context) {
	username := c.GetString(ContextKeyUsername)
	if username == "" {
		h.log.Error().Msg("username not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	users, err := h.store.ListUsers(c.Request.Context(), username)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		response.Users = append(response.Users, UserResponse{
			Username: u.Username,
			Online:   h.hub.Online(u.Username),
		})
	}

	c.JSON(http.StatusOK, response)
}
