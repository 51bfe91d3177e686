package artifacts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Artifact // ownerID -> artifacts
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Artifact),
	}
}

// Create stores a new artifact record for its owner.
func (r *MemoryRepo) Create(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[artifact.OwnerID] = append(r.data[artifact.OwnerID], artifact)
	return nil
}

// GetByID returns an artifact by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, artifactID string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, list := range r.data {
		for i := range list {
			if list[i].ID == artifactID && list[i].DeletedAt == nil {
				return list[i], nil
			}
		}
	}
	return Artifact{}, ErrNotFound
}

// ListByOwner returns live artifacts for an owner, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	live := make([]Artifact, 0, len(r.data[ownerID]))
	for _, a := range r.data[ownerID] {
		if a.DeletedAt == nil {
			live = append(live, a)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})
	if limit > 0 && len(live) > limit {
		live = live[:limit]
	}
	return live, nil
}

// IncrementDownloads bumps the download counter.
func (r *MemoryRepo) IncrementDownloads(ctx context.Context, artifactID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for owner, list := range r.data {
		for i := range list {
			if list[i].ID == artifactID && list[i].DeletedAt == nil {
				list[i].DownloadCount++
				r.data[owner] = list
				return nil
			}
		}
	}
	return ErrNotFound
}

// DeleteOlderThanRank soft-deletes records beyond the keep most recent.
func (r *MemoryRepo) DeleteOlderThanRank(ctx context.Context, ownerID string, keep int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.data[ownerID]
	liveIdx := make([]int, 0, len(list))
	for i := range list {
		if list[i].DeletedAt == nil {
			liveIdx = append(liveIdx, i)
		}
	}
	sort.SliceStable(liveIdx, func(a, b int) bool {
		return list[liveIdx[a]].CreatedAt.After(list[liveIdx[b]].CreatedAt)
	})

	now := time.Now().UTC()
	var removed []string
	for _, idx := range liveIdx[minInt(keep, len(liveIdx)):] {
		deletedAt := now
		list[idx].DeletedAt = &deletedAt
		removed = append(removed, list[idx].StorageKey)
	}
	r.data[ownerID] = list
	return removed, nil
}

// DeleteExpired soft-deletes records whose expiry passed.
func (r *MemoryRepo) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for owner, list := range r.data {
		for i := range list {
			if list[i].DeletedAt == nil && list[i].ExpiresAt.Before(now) {
				deletedAt := now
				list[i].DeletedAt = &deletedAt
				removed = append(removed, list[i].StorageKey)
			}
		}
		r.data[owner] = list
	}
	return removed, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var _ Repo = (*MemoryRepo)(nil)
