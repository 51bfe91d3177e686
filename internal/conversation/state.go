// Package conversation drives the multi-turn chat dialogue that collects a
// candidate's email and a job description, then hands off to the generation
// pipeline. State is keyed by phone identity; the store is its sole mutator.
package conversation

import (
	"context"
	"errors"
	"time"
)

// Step is the dialogue position for one phone identity.
type Step string

const (
	StepInitiated      Step = "initiated"
	StepCollectEmail   Step = "collecting_email"
	StepCollectJobText Step = "collecting_job_description"
	StepProcessing     Step = "processing"
	StepCompleted      Step = "completed"
	StepCancelled      Step = "cancelled"
)

// State is one conversation's accumulated inputs and position.
type State struct {
	Phone          string    `json:"phone"`
	Step           Step      `json:"step"`
	Email          string    `json:"email,omitempty"`
	JobDescription string    `json:"jobDescription,omitempty"`
	AttemptCount   int       `json:"attemptCount"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// ErrStateNotFound is returned by stores when no state exists for a key.
var ErrStateNotFound = errors.New("conversation state not found")

// Store holds conversation state keyed by phone. A ttl of zero on Put means
// no automatic expiry; a positive ttl lets the backend evict the entry on its
// own in addition to the explicit idle sweep.
type Store interface {
	Get(ctx context.Context, phone string) (State, error)
	Put(ctx context.Context, state State, ttl time.Duration) error
	Delete(ctx context.Context, phone string) error
	List(ctx context.Context) ([]State, error)
}
