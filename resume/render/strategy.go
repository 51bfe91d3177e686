// Package render turns a resume document into a binary artifact through an
// ordered chain of independently failing strategies.
package render

import (
	"context"
	"errors"

	"resumebot/resume/model"
)

// Artifact is a rendered binary resume document.
type Artifact struct {
	Bytes     []byte
	MimeType  string
	SizeBytes int
}

// ErrRenderFailed is returned only when every strategy in the chain failed.
var ErrRenderFailed = errors.New("all render strategies failed")

// ErrUnavailable signals that a strategy cannot run right now (e.g. the
// remote renderer is unreachable) and the chain should move on.
var ErrUnavailable = errors.New("render strategy unavailable")

// Strategy is one interchangeable rendering implementation.
type Strategy interface {
	Name() string
	Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error)
}

const pdfMimeType = "application/pdf"

func newArtifact(data []byte) (Artifact, error) {
	if len(data) == 0 {
		return Artifact{}, errors.New("renderer produced an empty artifact")
	}
	return Artifact{
		Bytes:     data,
		MimeType:  pdfMimeType,
		SizeBytes: len(data),
	}, nil
}
