// Package server exposes the chat webhook and the artifact history API over
// HTTP.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resumebot/internal/artifacts"
	"resumebot/internal/config"
	"resumebot/internal/conversation"
)

// NewEngine builds the gin engine with routes registered.
func NewEngine(cfg config.Config, machine *conversation.Machine, recorder *artifacts.Recorder, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	registerRoutes(engine, cfg, machine, recorder, log)
	return engine
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
