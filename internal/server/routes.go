package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resumebot/internal/artifacts"
	"resumebot/internal/config"
	"resumebot/internal/conversation"
)

func registerRoutes(r *gin.Engine, cfg config.Config, machine *conversation.Machine, recorder *artifacts.Recorder, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Locally stored artifacts are served under the same /files prefix the
	// uploader's fallback URLs point at.
	if cfg.ObjectStoreType == "local" && cfg.LocalStoreDir != "" {
		r.Static("/files", cfg.LocalStoreDir)
	}

	webhook := newWebhookHandler(machine, log)
	r.POST("/webhook", webhookAuth(cfg.WebhookSecret), webhook.handle)

	api := r.Group("/api/v1")
	history := newHistoryHandler(recorder)
	api.GET("/owners/:ownerID/artifacts", history.list)
	api.POST("/artifacts/:artifactID/download", history.recordDownload)
}
