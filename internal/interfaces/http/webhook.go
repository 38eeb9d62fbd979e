// Package http serves the Telegram webhook when the bot runs in
// webhook mode.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/config"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/goroutine"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookServer receives updates pushed by Telegram and hands them to
// the same handler the polling service uses.
type WebhookServer struct {
	engine  *gin.Engine
	server  *http.Server
	handler telegram.UpdateHandler
	secret  string
	logger  logger.Interface
}

func NewWebhookServer(cfg config.ServerConfig, secret string, handler telegram.UpdateHandler, log logger.Interface) *WebhookServer {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &WebhookServer{
		engine:  gin.New(),
		handler: handler,
		secret:  secret,
		logger:  log,
	}

	s.engine.Use(gin.Recovery())
	s.engine.GET("/healthz", s.health)
	s.engine.POST("/telegram/webhook", s.receiveUpdate)

	s.server = &http.Server{
		Addr:              cfg.GetAddr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *WebhookServer) Start() error {
	s.logger.Infow("starting webhook server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WebhookServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *WebhookServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *WebhookServer) receiveUpdate(c *gin.Context) {
	if s.secret != "" && c.GetHeader(secretTokenHeader) != s.secret {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warnw("malformed webhook payload", "error", err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	// Ack immediately; Telegram retries on slow responses. The update is
	// processed in the background with panic recovery.
	goroutine.SafeGo(s.logger, "webhook-update", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.handler.HandleUpdate(ctx, &update)
	})

	c.Status(http.StatusOK)
}
