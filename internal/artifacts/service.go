package artifacts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumebot/resume/model"
	"resumebot/resume/render"
)

// KeyDeleter removes stored objects when a record falls out of retention.
type KeyDeleter interface {
	Delete(ctx context.Context, key string) error
}

const (
	defaultRetentionPerOwner = 10
	defaultTTL               = 30 * 24 * time.Hour
)

// Recorder contains business logic for artifact history: recording, listing,
// download counting, and retention.
type Recorder struct {
	Repo              Repo
	Deleter           KeyDeleter
	RetentionPerOwner int
	TTL               time.Duration
	Log               *zap.Logger
}

// NewRecorder constructs a Recorder with default retention parameters.
func NewRecorder(repo Repo, deleter KeyDeleter, log *zap.Logger) *Recorder {
	return &Recorder{
		Repo:              repo,
		Deleter:           deleter,
		RetentionPerOwner: defaultRetentionPerOwner,
		TTL:               defaultTTL,
		Log:               log,
	}
}

// Record stores metadata for a freshly uploaded artifact and enforces the
// per-owner retention window.
func (r *Recorder) Record(ctx context.Context, artifact render.Artifact, doc model.ResumeDocument, ownerID, storageKey, url string) (string, error) {
	if ownerID == "" || storageKey == "" {
		return "", ErrInvalidInput
	}
	if r.Repo == nil {
		return "", errors.New("missing artifact repo")
	}

	now := time.Now().UTC()
	record := Artifact{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		StorageKey: storageKey,
		URL:        url,
		MimeType:   artifact.MimeType,
		SizeBytes:  artifact.SizeBytes,
		Document:   doc,
		CreatedAt:  now,
		ExpiresAt:  now.Add(r.ttl()),
	}
	if err := r.Repo.Create(ctx, record); err != nil {
		return "", err
	}

	r.enforceRetention(ctx, ownerID)
	return record.ID, nil
}

// ListByOwner returns the owner's artifacts, newest first.
func (r *Recorder) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Artifact, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return r.Repo.ListByOwner(ctx, ownerID, limit)
}

// RecordDownload bumps an artifact's download counter.
func (r *Recorder) RecordDownload(ctx context.Context, artifactID string) error {
	if artifactID == "" {
		return ErrInvalidInput
	}
	return r.Repo.IncrementDownloads(ctx, artifactID)
}

// SweepExpired soft-deletes every record past its TTL and removes the backing
// objects. Called from the periodic retention sweep.
func (r *Recorder) SweepExpired(ctx context.Context) int {
	keys, err := r.Repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		r.Log.Error("artifact expiry sweep failed", zap.Error(err))
		return 0
	}
	r.deleteObjects(ctx, keys)
	if len(keys) > 0 {
		r.Log.Info("expired artifacts swept", zap.Int("count", len(keys)))
	}
	return len(keys)
}

func (r *Recorder) enforceRetention(ctx context.Context, ownerID string) {
	keep := r.RetentionPerOwner
	if keep <= 0 {
		keep = defaultRetentionPerOwner
	}
	keys, err := r.Repo.DeleteOlderThanRank(ctx, ownerID, keep)
	if err != nil {
		r.Log.Error("artifact retention enforcement failed",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return
	}
	r.deleteObjects(ctx, keys)
}

func (r *Recorder) deleteObjects(ctx context.Context, keys []string) {
	if r.Deleter == nil {
		return
	}
	for _, key := range keys {
		if err := r.Deleter.Delete(ctx, key); err != nil {
			r.Log.Warn("stored object cleanup failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}

func (r *Recorder) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return defaultTTL
}
