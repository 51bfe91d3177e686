package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"resumebot/resume/model"
)

// MinimalStrategy is the renderer of last resort. It reconstructs a
// best-effort document straight from the structured data with the same
// primitive drawing approach as the vector strategy but reduced layout
// fidelity. It shares no intermediate output with any other strategy and has
// no external dependency, so it is expected to always succeed for a
// structurally valid document.
type MinimalStrategy struct{}

// NewMinimalStrategy constructs the guaranteed fallback renderer.
func NewMinimalStrategy() *MinimalStrategy {
	return &MinimalStrategy{}
}

func (s *MinimalStrategy) Name() string { return "minimal" }

// Render produces a plain single-column PDF from the document.
func (s *MinimalStrategy) Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	pdf := newDoc()
	pdf.SetAutoPageBreak(true, pageMarginMM)

	write := func(style string, size float64, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.MultiCell(contentWidthMM, bodyLineHeightMM, text, "", "L", false)
	}

	write("B", 16, doc.PersonalInfo.FullName())
	write("", 9, contactLine(doc.PersonalInfo))
	pdf.Ln(2)

	write("B", 11, "SUMMARY")
	write("", 10, doc.Summary)
	pdf.Ln(2)

	if len(doc.Skills) > 0 {
		write("B", 11, "SKILLS")
		write("", 10, strings.Join(skillNames(doc.Skills), ", "))
		pdf.Ln(2)
	}

	if len(doc.Experience) > 0 {
		write("B", 11, "EXPERIENCE")
		for _, exp := range doc.Experience {
			write("B", 10, fmt.Sprintf("%s, %s (%s)", exp.Title, exp.Company,
				formatDateRange(exp.StartDate, exp.EndDate, exp.IsCurrentJob)))
			write("", 10, exp.Description)
		}
		pdf.Ln(2)
	}

	if len(doc.Education) > 0 {
		write("B", 11, "EDUCATION")
		for _, edu := range doc.Education {
			write("", 10, fmt.Sprintf("%s, %s - %s (%s)", edu.Degree, edu.Field, edu.Institution,
				formatDateRange(edu.StartDate, edu.EndDate, !edu.IsCompleted)))
		}
		pdf.Ln(2)
	}

	if len(doc.Projects) > 0 {
		write("B", 11, "PROJECTS")
		for _, project := range doc.Projects {
			write("", 10, fmt.Sprintf("%s: %s [%s]", project.Name, project.Description,
				strings.Join(project.Technologies, ", ")))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("minimal render: %w", err)
	}
	return newArtifact(buf.Bytes())
}

var _ Strategy = (*MinimalStrategy)(nil)
