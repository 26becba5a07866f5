package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/auth"
	"github.com/antonkazakov/dmline-server/internal/core"
)

// WSHandler upgrades HTTP connections and bridges them to hub sessions.
type WSHandler struct {
	hub             *core.Hub
	auth            *auth.Service
	maxMessageBytes int64
	log             *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, authService *auth.Service, maxMessageBytes int64, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:             hub,
		auth:            authService,
		maxMessageBytes: maxMessageBytes,
		log:             logger,
	}
}

// Serve authenticates the connection, binds it to a hub session and runs
// the read/write loops until the transport fails or closes.
// GET /ws?token=<jwt>
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "token query parameter is required"})
		return
	}
	claims, err := h.auth.ValidateToken(token)
	if err != nil {
		h.log.Debug().Err(err).Msg("ws token rejected")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	conn.SetReadLimit(h.maxMessageBytes)

	sess := h.hub.Connect(claims.Username, uuid.NewString())
	defer h.hub.Disconnect(sess)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, sess)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, sess.Client())
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("user", claims.Username).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop feeds inbound payloads through the session. Recoverable errors
// (bad payloads, storage failures) are reported back over the session's own
// event channel; only transport errors end the loop.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, sess *core.Session) error {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		if cerr := sess.HandleInbound(ctx, raw); cerr != nil {
			h.log.Debug().
				Str("user", sess.Client().UserID).
				Str("code", cerr.Code).
				Msg("inbound payload rejected")
			if sendErr := sess.Client().Send(&core.Event{Kind: core.EventError, Error: cerr}); sendErr != nil {
				h.log.Debug().Err(sendErr).Msg("error report dropped")
			}
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events():
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("user", client.UserID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
