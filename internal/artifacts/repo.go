package artifacts

import (
	"context"
	"time"
)

// Repo persists artifact records.
type Repo interface {
	Create(ctx context.Context, artifact Artifact) error
	GetByID(ctx context.Context, artifactID string) (Artifact, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Artifact, error)
	IncrementDownloads(ctx context.Context, artifactID string) error
	// DeleteOlderThanRank soft-deletes every record for the owner beyond the
	// keep most recent ones and returns the affected storage keys.
	DeleteOlderThanRank(ctx context.Context, ownerID string, keep int) ([]string, error)
	// DeleteExpired soft-deletes every record whose expiry passed before now
	// and returns the affected storage keys.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}
