package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"resumebot/resume/model"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new artifact record.
func (r *PGRepo) Create(ctx context.Context, artifact Artifact) error {
	const query = `
INSERT INTO artifacts (
    id,
    owner_id,
    storage_key,
    url,
    mime_type,
    size_bytes,
    document,
    download_count,
    created_at,
    expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`

	docJSON, err := json.Marshal(artifact.Document)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		artifact.ID,
		artifact.OwnerID,
		artifact.StorageKey,
		artifact.URL,
		artifact.MimeType,
		artifact.SizeBytes,
		docJSON,
		artifact.CreatedAt,
		artifact.ExpiresAt,
	)
	return err
}

const selectColumns = `id, owner_id, storage_key, url, mime_type, size_bytes, document, download_count, created_at, expires_at`

// GetByID returns a live artifact by ID.
func (r *PGRepo) GetByID(ctx context.Context, artifactID string) (Artifact, error) {
	const query = `
SELECT ` + selectColumns + `
FROM artifacts
WHERE id = $1 AND deleted_at IS NULL`

	row := r.DB.QueryRowContext(ctx, query, artifactID)
	artifact, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	return artifact, nil
}

// ListByOwner returns live artifacts for an owner, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Artifact, error) {
	const query = `
SELECT ` + selectColumns + `
FROM artifacts
WHERE owner_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2`

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact)
	}
	return out, rows.Err()
}

// IncrementDownloads bumps the download counter.
func (r *PGRepo) IncrementDownloads(ctx context.Context, artifactID string) error {
	const query = `
UPDATE artifacts
SET download_count = download_count + 1
WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.DB.ExecContext(ctx, query, artifactID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThanRank soft-deletes records beyond the keep most recent for an
// owner and returns their storage keys.
func (r *PGRepo) DeleteOlderThanRank(ctx context.Context, ownerID string, keep int) ([]string, error) {
	const query = `
UPDATE artifacts
SET deleted_at = now()
WHERE id IN (
    SELECT id FROM artifacts
    WHERE owner_id = $1 AND deleted_at IS NULL
    ORDER BY created_at DESC
    OFFSET $2
)
RETURNING storage_key`

	if keep < 0 {
		keep = 0
	}
	return r.collectKeys(ctx, query, ownerID, keep)
}

// DeleteExpired soft-deletes every record whose expiry passed and returns
// their storage keys.
func (r *PGRepo) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	const query = `
UPDATE artifacts
SET deleted_at = $1
WHERE deleted_at IS NULL AND expires_at < $1
RETURNING storage_key`

	return r.collectKeys(ctx, query, now)
}

func (r *PGRepo) collectKeys(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (Artifact, error) {
	var artifact Artifact
	var docJSON []byte
	err := row.Scan(
		&artifact.ID,
		&artifact.OwnerID,
		&artifact.StorageKey,
		&artifact.URL,
		&artifact.MimeType,
		&artifact.SizeBytes,
		&docJSON,
		&artifact.DownloadCount,
		&artifact.CreatedAt,
		&artifact.ExpiresAt,
	)
	if err != nil {
		return Artifact{}, err
	}
	if len(docJSON) > 0 {
		var doc model.ResumeDocument
		if err := json.Unmarshal(docJSON, &doc); err == nil {
			artifact.Document = doc
		}
	}
	return artifact, nil
}

var _ Repo = (*PGRepo)(nil)
