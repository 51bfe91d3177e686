package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"resumebot/resume/model"
)

// VectorStrategy draws the document directly onto a page canvas with layout
// primitives. It has no external dependency and is the primary strategy.
type VectorStrategy struct{}

// NewVectorStrategy constructs the primary renderer.
func NewVectorStrategy() *VectorStrategy {
	return &VectorStrategy{}
}

func (s *VectorStrategy) Name() string { return "vector" }

// Render produces a full-fidelity PDF for the document.
func (s *VectorStrategy) Render(ctx context.Context, doc model.ResumeDocument) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	pdf := newDoc()

	drawHeader(pdf, doc.PersonalInfo)

	if strings.TrimSpace(doc.Summary) != "" {
		sectionHeading(pdf, "Summary")
		bodyParagraph(pdf, doc.Summary)
	}

	if len(doc.Skills) > 0 {
		sectionHeading(pdf, "Skills")
		drawSkillGroups(pdf, doc.Skills)
	}

	if len(doc.Experience) > 0 {
		sectionHeading(pdf, "Experience")
		for _, exp := range doc.Experience {
			drawExperience(pdf, exp)
		}
	}

	if len(doc.Education) > 0 {
		sectionHeading(pdf, "Education")
		for _, edu := range doc.Education {
			drawEducation(pdf, edu)
		}
	}

	if len(doc.Projects) > 0 {
		sectionHeading(pdf, "Projects")
		for _, project := range doc.Projects {
			drawProject(pdf, project)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("vector render: %w", err)
	}
	return newArtifact(buf.Bytes())
}

func drawHeader(pdf *fpdf.Fpdf, info model.PersonalInfo) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidthMM, 10, info.FullName(), "", 1, "C", false, 0, "")

	if contact := contactLine(info); contact != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentWidthMM, 5, contact, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
}

// drawSkillGroups prints one line per priority bucket so the high-priority
// keywords land at the top of the section.
func drawSkillGroups(pdf *fpdf.Fpdf, skills []model.Skill) {
	groups := []struct {
		label    string
		priority model.SkillPriority
	}{
		{"Core", model.PriorityHigh},
		{"Familiar", model.PriorityMedium},
		{"Additional", model.PriorityLow},
	}
	for _, g := range groups {
		var names []string
		for _, s := range skills {
			if s.Priority == g.priority {
				names = append(names, s.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		ensureSpace(pdf, bodyLineHeightMM*2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, bodyLineHeightMM, g.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentWidthMM-28, bodyLineHeightMM, strings.Join(names, ", "), "", "L", false)
	}
}

func drawExperience(pdf *fpdf.Fpdf, exp model.Experience) {
	ensureSpace(pdf, 16)
	pdf.SetFont("Helvetica", "B", 11)
	title := exp.Title
	if exp.Company != "" {
		title = fmt.Sprintf("%s — %s", exp.Title, exp.Company)
	}
	pdf.CellFormat(130, 6, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(50, 6, formatDateRange(exp.StartDate, exp.EndDate, exp.IsCurrentJob), "", 1, "R", false, 0, "")

	if exp.Location != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentWidthMM, 4, exp.Location, "", 1, "L", false, 0, "")
	}
	bodyParagraph(pdf, exp.Description)
	pdf.Ln(1.5)
}

func drawEducation(pdf *fpdf.Fpdf, edu model.Education) {
	ensureSpace(pdf, 12)
	pdf.SetFont("Helvetica", "B", 11)
	degree := strings.TrimSpace(edu.Degree)
	if edu.Field != "" {
		degree = fmt.Sprintf("%s, %s", degree, edu.Field)
	}
	pdf.CellFormat(130, 6, degree, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(50, 6, formatDateRange(edu.StartDate, edu.EndDate, !edu.IsCompleted), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	line := edu.Institution
	if edu.GPA != "" {
		line = fmt.Sprintf("%s (GPA: %s)", line, edu.GPA)
	}
	pdf.CellFormat(contentWidthMM, 5, line, "", 1, "L", false, 0, "")
	pdf.Ln(1.5)
}

func drawProject(pdf *fpdf.Fpdf, project model.Project) {
	ensureSpace(pdf, 12)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidthMM, 6, project.Name, "", 1, "L", false, 0, "")
	bodyParagraph(pdf, project.Description)
	if len(project.Technologies) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentWidthMM, 4.5, "Technologies: "+strings.Join(project.Technologies, ", "), "", 1, "L", false, 0, "")
	}
	pdf.Ln(1.5)
}

var _ Strategy = (*VectorStrategy)(nil)
