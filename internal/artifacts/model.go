// Package artifacts records rendered resume artifacts and their history.
package artifacts

import (
	"time"

	"resumebot/resume/model"
)

// Artifact is the stored metadata for one rendered resume document.
type Artifact struct {
	ID            string
	OwnerID       string
	StorageKey    string
	URL           string
	MimeType      string
	SizeBytes     int
	Document      model.ResumeDocument
	DownloadCount int
	CreatedAt     time.Time
	ExpiresAt     time.Time
	DeletedAt     *time.Time
}
