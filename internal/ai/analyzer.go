package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"resumebot/internal/jobdesc"
	"resumebot/internal/logger"
)

const defaultCallTimeout = 15 * time.Second

// Analyzer decorates the deterministic keyword analyzer with an AI pass.
// When the model call fails, times out, returns malformed JSON, or violates
// the schema, the fallback result is used and the incident is only logged.
type Analyzer struct {
	Client   Client
	Fallback jobdesc.Analyzer
	Timeout  time.Duration
	Log      *zap.Logger
}

// NewAnalyzer wires the AI analyzer over the given fallback. A nil client
// makes the analyzer a transparent pass-through.
func NewAnalyzer(client Client, fallback jobdesc.Analyzer, log *zap.Logger) *Analyzer {
	return &Analyzer{
		Client:   client,
		Fallback: fallback,
		Timeout:  defaultCallTimeout,
		Log:      log,
	}
}

// Analyze implements jobdesc.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, text string) jobdesc.RequirementProfile {
	if a.Client == nil {
		return a.Fallback.Analyze(ctx, text)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := a.Client.ExtractRequirements(callCtx, text)
	if err != nil {
		a.Log.Warn("ai analyzer failed, using keyword analyzer",
			zap.Error(err),
			zap.String("job_text", logger.Truncate(text, 80)))
		return a.Fallback.Analyze(ctx, text)
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		a.Log.Warn("ai analyzer returned unusable output, using keyword analyzer", zap.Error(err))
		return a.Fallback.Analyze(ctx, text)
	}
	return profile
}

func decodeProfile(raw json.RawMessage) (jobdesc.RequirementProfile, error) {
	raw = extractJSONObject(raw)
	if err := validateRequirements(raw); err != nil {
		return jobdesc.RequirementProfile{}, err
	}

	var profile jobdesc.RequirementProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return jobdesc.RequirementProfile{}, err
	}
	if profile.Industry == "" {
		profile.Industry = jobdesc.DefaultIndustry
	}
	return profile, nil
}

// extractJSONObject tolerates models that wrap JSON in prose or code fences
// by slicing from the first '{' to the last '}'.
func extractJSONObject(raw json.RawMessage) json.RawMessage {
	s := strings.TrimSpace(string(raw))
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return json.RawMessage(s[start : end+1])
	}
	return raw
}

var _ jobdesc.Analyzer = (*Analyzer)(nil)
