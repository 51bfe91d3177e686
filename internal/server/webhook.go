package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resumebot/internal/conversation"
	"resumebot/internal/messaging"
)

type webhookHandler struct {
	machine *conversation.Machine
	log     *zap.Logger
}

func newWebhookHandler(machine *conversation.Machine, log *zap.Logger) *webhookHandler {
	return &webhookHandler{machine: machine, log: log}
}

// handle accepts one inbound chat message and advances its conversation. The
// chat provider only needs a 200 acknowledgment; processing errors are our
// problem, not the provider's.
func (h *webhookHandler) handle(c *gin.Context) {
	var msg messaging.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(msg.Identity) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity is required"})
		return
	}

	if err := h.machine.HandleMessage(c.Request.Context(), msg); err != nil {
		h.log.Error("webhook message handling failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
