// Package ai layers an LLM-backed job-description analyzer in front of the
// deterministic keyword analyzer. Any failure on the AI path falls back
// silently; callers never see an AI error.
package ai

import (
	"context"
	"encoding/json"
)

// Client is the abstract capability contract for the model vendor.
type Client interface {
	// ExtractRequirements returns a JSON document matching requirementsSchema.
	ExtractRequirements(ctx context.Context, jobText string) (json.RawMessage, error)
}
