// Package storage persists rendered artifacts with retry and graceful URL
// degradation.
package storage

import (
	"bytes"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"resumebot/internal/shared/retry"
	"resumebot/internal/storage/object"
	"resumebot/resume/render"
)

// UploadResult reports where an artifact ended up. Success implies URL is
// present and resolvable; failure still carries a fallback URL so delivery
// can proceed without durable remote storage.
type UploadResult struct {
	Success bool
	URL     string
	Err     string
}

const defaultBackoffBase = 500 * time.Millisecond

// Uploader pushes artifacts to the object store with exponential backoff.
type Uploader struct {
	Store         object.Store
	FallbackBase  string
	BackoffBase   time.Duration
	Log           *zap.Logger
}

// NewUploader constructs an Uploader. fallbackBase is the public base URL
// used to derive a locally servable URL when every attempt fails.
func NewUploader(store object.Store, fallbackBase string, backoffBase time.Duration, log *zap.Logger) *Uploader {
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}
	return &Uploader{
		Store:        store,
		FallbackBase: strings.TrimRight(fallbackBase, "/"),
		BackoffBase:  backoffBase,
		Log:          log,
	}
}

// Upload attempts the remote upload up to maxAttempts times. It never returns
// an error: exhaustion degrades to a fallback URL derived from the key.
func (u *Uploader) Upload(ctx context.Context, artifact render.Artifact, key string, maxAttempts int) UploadResult {
	var url string
	err := retry.Do(ctx, maxAttempts, u.BackoffBase, func(ctx context.Context) error {
		var putErr error
		url, _, putErr = u.Store.Put(ctx, key, artifact.MimeType, bytes.NewReader(artifact.Bytes))
		if putErr != nil {
			u.Log.Warn("artifact upload attempt failed",
				zap.String("key", key),
				zap.Error(putErr))
		}
		return putErr
	})
	if err == nil {
		return UploadResult{Success: true, URL: url}
	}

	fallback := u.FallbackURL(key)
	u.Log.Error("artifact upload exhausted retries, degrading to fallback url",
		zap.String("key", key),
		zap.String("fallback_url", fallback),
		zap.Error(err))
	return UploadResult{Success: false, URL: fallback, Err: err.Error()}
}

// FallbackURL derives the locally servable URL pattern for a key.
func (u *Uploader) FallbackURL(key string) string {
	return u.FallbackBase + "/files/" + strings.TrimLeft(key, "/")
}

// Delete removes an uploaded artifact. Absent keys are success.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	return u.Store.Delete(ctx, key)
}
