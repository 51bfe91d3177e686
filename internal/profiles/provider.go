// Package profiles resolves registered candidate profiles by contact
// identity. The conversational flow only tailors resumes for candidates that
// already have a stored profile; an ErrNotFound here turns into a
// registration prompt upstream.
package profiles

import (
	"context"

	"resumebot/resume/model"
)

// Provider looks up candidate profiles by email or phone. Implementations
// must return ErrNotFound when no profile matches either identity.
type Provider interface {
	FindByIdentity(ctx context.Context, email, phone string) (model.CandidateProfile, error)
}
