package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// verifyArtifact rejects artifacts a strategy reported as successful but that
// no viewer could open. A failure here counts as a failure of the producing
// strategy.
func verifyArtifact(a Artifact) error {
	if a.SizeBytes == 0 || len(a.Bytes) == 0 {
		return errors.New("artifact is empty")
	}
	if a.SizeBytes != len(a.Bytes) {
		return fmt.Errorf("artifact size mismatch: declared %d, actual %d", a.SizeBytes, len(a.Bytes))
	}
	if a.MimeType != pdfMimeType {
		return nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(a.Bytes), int64(len(a.Bytes)))
	if err != nil {
		return fmt.Errorf("artifact is not a readable pdf: %w", err)
	}
	if reader.NumPage() < 1 {
		return errors.New("artifact pdf has no pages")
	}
	return nil
}
