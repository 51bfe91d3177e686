package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"resumebot/resume/model"
)

// MarkupStrategy converts a generated markup representation of the document
// using an in-process, browser-free converter (fpdf's basic HTML writer).
type MarkupStrategy struct{}

// NewMarkupStrategy constructs the markup converter strategy.
func NewMarkupStrategy() *MarkupStrategy {
	return &MarkupStrategy{}
}

func (s *MarkupStrategy) Name() string { return "markup" }

// Render generates basic markup for the document and converts it to PDF.
func (s *MarkupStrategy) Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	markup := documentBasicMarkup(doc)
	if strings.TrimSpace(markup) == "" {
		return Artifact{}, errors.New("generated markup is empty")
	}

	pdf := newDoc()
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.SetFont("Helvetica", "", 10)

	writer := pdf.HTMLBasicNew()
	writer.Write(bodyLineHeightMM, markup)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("markup render: %w", err)
	}
	return newArtifact(buf.Bytes())
}

// documentBasicMarkup emits the subset of HTML the in-process converter
// understands: bold, italic, centering and line breaks.
func documentBasicMarkup(doc model.ResumeDocument) string {
	var b strings.Builder
	esc := html.EscapeString

	fmt.Fprintf(&b, "<center><b>%s</b></center><br>", esc(doc.PersonalInfo.FullName()))
	if contact := contactLine(doc.PersonalInfo); contact != "" {
		fmt.Fprintf(&b, "<center>%s</center><br>", esc(contact))
	}

	if doc.Summary != "" {
		fmt.Fprintf(&b, "<b>Summary</b><br>%s<br><br>", esc(doc.Summary))
	}

	if len(doc.Skills) > 0 {
		fmt.Fprintf(&b, "<b>Skills</b><br>%s<br><br>", esc(strings.Join(skillNames(doc.Skills), ", ")))
	}

	if len(doc.Experience) > 0 {
		b.WriteString("<b>Experience</b><br>")
		for _, exp := range doc.Experience {
			fmt.Fprintf(&b, "<b>%s</b> — %s (<i>%s</i>)<br>%s<br>",
				esc(exp.Title), esc(exp.Company),
				esc(formatDateRange(exp.StartDate, exp.EndDate, exp.IsCurrentJob)),
				esc(exp.Description))
		}
		b.WriteString("<br>")
	}

	if len(doc.Education) > 0 {
		b.WriteString("<b>Education</b><br>")
		for _, edu := range doc.Education {
			fmt.Fprintf(&b, "<b>%s, %s</b> — %s (<i>%s</i>)<br>",
				esc(edu.Degree), esc(edu.Field), esc(edu.Institution),
				esc(formatDateRange(edu.StartDate, edu.EndDate, !edu.IsCompleted)))
		}
		b.WriteString("<br>")
	}

	if len(doc.Projects) > 0 {
		b.WriteString("<b>Projects</b><br>")
		for _, project := range doc.Projects {
			fmt.Fprintf(&b, "<b>%s</b>: %s (%s)<br>",
				esc(project.Name), esc(project.Description),
				esc(strings.Join(project.Technologies, ", ")))
		}
	}
	return b.String()
}

// documentHTML emits the full styled HTML used by the remote browser
// renderer.
func documentHTML(doc model.ResumeDocument) string {
	var b strings.Builder
	esc := html.EscapeString

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; margin: 15mm; color: #1a1a1a; }
h1 { font-size: 20pt; text-align: center; margin: 0 0 4px; }
.contact { text-align: center; font-size: 9pt; color: #444; margin-bottom: 12px; }
h2 { font-size: 12pt; border-bottom: 1px solid #222; padding-bottom: 2px; margin: 14px 0 6px; }
.entry { margin-bottom: 8px; }
.entry-head { display: flex; justify-content: space-between; }
.entry-head .dates { font-style: italic; font-size: 9pt; color: #555; }
.tech { font-style: italic; font-size: 9pt; color: #555; }
@page { size: A4; }
</style></head><body>`)

	fmt.Fprintf(&b, "<h1>%s</h1>", esc(doc.PersonalInfo.FullName()))
	if contact := contactLine(doc.PersonalInfo); contact != "" {
		fmt.Fprintf(&b, `<div class="contact">%s</div>`, esc(contact))
	}

	if doc.Summary != "" {
		fmt.Fprintf(&b, "<h2>Summary</h2><p>%s</p>", esc(doc.Summary))
	}

	if len(doc.Skills) > 0 {
		fmt.Fprintf(&b, "<h2>Skills</h2><p>%s</p>", esc(strings.Join(skillNames(doc.Skills), ", ")))
	}

	if len(doc.Experience) > 0 {
		b.WriteString("<h2>Experience</h2>")
		for _, exp := range doc.Experience {
			fmt.Fprintf(&b, `<div class="entry"><div class="entry-head"><b>%s — %s</b><span class="dates">%s</span></div><p>%s</p></div>`,
				esc(exp.Title), esc(exp.Company),
				esc(formatDateRange(exp.StartDate, exp.EndDate, exp.IsCurrentJob)),
				esc(exp.Description))
		}
	}

	if len(doc.Education) > 0 {
		b.WriteString("<h2>Education</h2>")
		for _, edu := range doc.Education {
			fmt.Fprintf(&b, `<div class="entry"><div class="entry-head"><b>%s, %s</b><span class="dates">%s</span></div><p>%s</p></div>`,
				esc(edu.Degree), esc(edu.Field),
				esc(formatDateRange(edu.StartDate, edu.EndDate, !edu.IsCompleted)),
				esc(edu.Institution))
		}
	}

	if len(doc.Projects) > 0 {
		b.WriteString("<h2>Projects</h2>")
		for _, project := range doc.Projects {
			fmt.Fprintf(&b, `<div class="entry"><b>%s</b><p>%s</p><div class="tech">%s</div></div>`,
				esc(project.Name), esc(project.Description),
				esc(strings.Join(project.Technologies, ", ")))
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

var _ Strategy = (*MarkupStrategy)(nil)
