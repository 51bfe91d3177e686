package profiles

import (
	"context"
	"strings"
	"sync"

	"resumebot/resume/model"
)

// MemoryRepo is an in-memory Provider used in tests and when no database is
// configured.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles []model.CandidateProfile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Add registers a profile for lookup.
func (r *MemoryRepo) Add(profile model.CandidateProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, profile)
}

// FindByIdentity matches on email first, then phone. Email comparison is
// case-insensitive.
func (r *MemoryRepo) FindByIdentity(ctx context.Context, email, phone string) (model.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return model.CandidateProfile{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return model.CandidateProfile{}, ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.profiles {
		if email != "" && strings.ToLower(p.PersonalInfo.Email) == email {
			return p, nil
		}
	}
	for _, p := range r.profiles {
		if phone != "" && p.PersonalInfo.Phone == phone {
			return p, nil
		}
	}
	return model.CandidateProfile{}, ErrNotFound
}

var _ Provider = (*MemoryRepo)(nil)
