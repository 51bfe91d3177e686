package render

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resumebot/resume/model"
)

const defaultStrategyTimeout = 30 * time.Second

// Pipeline attempts an ordered chain of strategies until one produces a
// verifiable artifact. Per-strategy failures are logged and swallowed; only
// exhaustion of the whole chain surfaces as ErrRenderFailed. Strategies run
// strictly in order, never concurrently: the later ones exist precisely for
// when the earlier ones are unavailable.
type Pipeline struct {
	Strategies      []Strategy
	StrategyTimeout time.Duration
	Log             *zap.Logger
}

// NewPipeline builds the standard four-strategy chain.
func NewPipeline(remoteURL string, timeout time.Duration, log *zap.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = defaultStrategyTimeout
	}
	return &Pipeline{
		Strategies: []Strategy{
			NewVectorStrategy(),
			NewRemoteStrategy(remoteURL, log),
			NewMarkupStrategy(),
			NewMinimalStrategy(),
		},
		StrategyTimeout: timeout,
		Log:             log,
	}
}

// Render runs the chain and returns the first verified artifact.
func (p *Pipeline) Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error) {
	if len(p.Strategies) == 0 {
		return Artifact{}, ErrRenderFailed
	}

	timeout := p.StrategyTimeout
	if timeout <= 0 {
		timeout = defaultStrategyTimeout
	}

	var lastErr error
	for _, strategy := range p.Strategies {
		artifact, err := p.renderOne(ctx, strategy, timeout, doc)
		if err != nil {
			lastErr = err
			p.Log.Warn("render strategy failed",
				zap.String("strategy", strategy.Name()),
				zap.Error(err))
			continue
		}

		p.Log.Info("render strategy succeeded",
			zap.String("strategy", strategy.Name()),
			zap.Int("size_bytes", artifact.SizeBytes))
		return artifact, nil
	}
	return Artifact{}, fmt.Errorf("%w: last error: %v", ErrRenderFailed, lastErr)
}

func (p *Pipeline) renderOne(ctx context.Context, strategy Strategy, timeout time.Duration, doc model.ResumeDocument) (Artifact, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	artifact, err := strategy.Render(callCtx, doc)
	if err != nil {
		return Artifact{}, err
	}
	if err := verifyArtifact(artifact); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}
