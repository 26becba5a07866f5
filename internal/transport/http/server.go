package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/antonkazakov/dmline-server/internal/auth"
	"github.com/antonkazakov/dmline-server/internal/config"
	"github.com/antonkazakov/dmline-server/internal/core"
	"github.com/antonkazakov/dmline-server/internal/store"
)

// NewServer builds the HTTP server: REST API for accounts, directory,
// history and uploads, plus the websocket endpoint bridging into the hub.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger), CORSMiddleware())

	api := NewAPIHandlers(authService, logger)
	users := NewUserHandlers(st, hub, logger)
	messages := NewMessageHandlers(st, logger)
	uploads := NewUploadHandlers(cfg.MaxUploadBytes, logger)
	ws := NewWSHandler(hub, authService, cfg.MaxMessageBytes, logger)

	router.GET("/health", healthHandler)
	router.POST("/api/signup", api.Signup)
	router.POST("/api/login", api.Login)

	authed := router.Group("/api", AuthMiddleware(authService, logger))
	authed.GET("/users", users.ListUsers)
	authed.GET("/messages/:user/:peer", messages.GetConversation)
	authed.POST("/upload", uploads.Upload)

	router.GET("/ws", ws.Serve)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
