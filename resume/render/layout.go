package render

import (
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resumebot/resume/model"
)

// Shared page geometry for the fpdf-based strategies.
const (
	pageMarginMM     = 15.0
	pageBreakAtMM    = 270.0 // A4 height 297mm minus bottom margin
	contentWidthMM   = 180.0
	sectionGapMM     = 4.0
	ruleThicknessMM  = 0.4
	bodyLineHeightMM = 5.0
)

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// ensureSpace starts a new page when the cumulative vertical offset would
// cross the page-height threshold.
func ensureSpace(pdf *fpdf.Fpdf, neededMM float64) {
	if pdf.GetY()+neededMM > pageBreakAtMM {
		pdf.AddPage()
		pdf.SetY(pageMarginMM)
	}
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	ensureSpace(pdf, 14)
	pdf.Ln(sectionGapMM)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidthMM, 7, title, "", 1, "L", false, 0, "")
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetLineWidth(ruleThicknessMM)
	pdf.Line(x, y, x+contentWidthMM, y)
	pdf.Ln(2)
}

func bodyParagraph(pdf *fpdf.Fpdf, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	pdf.SetFont("Helvetica", "", 10)
	lines := pdf.SplitText(text, contentWidthMM)
	ensureSpace(pdf, float64(min(len(lines), 4))*bodyLineHeightMM)
	pdf.MultiCell(contentWidthMM, bodyLineHeightMM, text, "", "L", false)
}

func formatDateRange(start time.Time, end *time.Time, current bool) string {
	const layout = "Jan 2006"
	from := "—"
	if !start.IsZero() {
		from = start.Format(layout)
	}
	to := "Present"
	if !current && end != nil && !end.IsZero() {
		to = end.Format(layout)
	}
	return from + " – " + to
}

func contactLine(info model.PersonalInfo) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{info.Email, info.Phone, info.Location, info.LinkedIn, info.GitHub} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "  |  ")
}

func skillNames(skills []model.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
