package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumebot/internal/artifacts"
)

type historyHandler struct {
	recorder *artifacts.Recorder
}

func newHistoryHandler(recorder *artifacts.Recorder) *historyHandler {
	return &historyHandler{recorder: recorder}
}

type artifactView struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	MimeType      string `json:"mimeType"`
	SizeBytes     int    `json:"sizeBytes"`
	DownloadCount int    `json:"downloadCount"`
	CreatedAt     string `json:"createdAt"`
}

func (h *historyHandler) list(c *gin.Context) {
	ownerID := c.Param("ownerID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, err := h.recorder.ListByOwner(c.Request.Context(), ownerID, limit)
	if err != nil {
		if errors.Is(err, artifacts.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "owner id is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	views := make([]artifactView, 0, len(list))
	for _, a := range list {
		views = append(views, artifactView{
			ID:            a.ID,
			URL:           a.URL,
			MimeType:      a.MimeType,
			SizeBytes:     a.SizeBytes,
			DownloadCount: a.DownloadCount,
			CreatedAt:     a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": views})
}

func (h *historyHandler) recordDownload(c *gin.Context) {
	artifactID := c.Param("artifactID")

	if err := h.recorder.RecordDownload(c.Request.Context(), artifactID); err != nil {
		switch {
		case errors.Is(err, artifacts.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
		case errors.Is(err, artifacts.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "artifact id is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
