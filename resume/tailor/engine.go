// Package tailor merges a candidate profile with a job requirement profile
// into a prioritized resume document.
package tailor

import (
	"fmt"
	"strings"
	"time"

	"resumebot/internal/jobdesc"
	"resumebot/resume/model"
)

// Engine produces tailored resume documents. It is pure and deterministic:
// identical inputs yield identical skill ordering and summary text. Now is
// injectable so "current job" date math is stable under test.
type Engine struct {
	Now func() time.Time
}

// NewEngine constructs an Engine using wall-clock time.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// Tailor builds a new ResumeDocument from the profile and requirements.
// It never fails: malformed optional fields are replaced by placeholders.
func (e *Engine) Tailor(profile model.CandidateProfile, requirements jobdesc.RequirementProfile) model.ResumeDocument {
	profile = profile.Normalize()

	skills := prioritizeSkills(profile.Skills, requirements)

	doc := model.ResumeDocument{
		PersonalInfo: profile.PersonalInfo,
		Summary:      e.buildSummary(profile, requirements, skills),
		Skills:       skills,
		Experience:   profile.Experience,
		Education:    profile.Education,
		Projects:     profile.Projects,
	}

	// Downstream renderers rely on every section being structurally
	// non-empty.
	if len(doc.Experience) == 0 {
		doc.Experience = []model.Experience{placeholderExperience(e.now())}
	}
	if len(doc.Education) == 0 {
		doc.Education = []model.Education{placeholderEducation(e.now())}
	}
	if len(doc.Projects) == 0 {
		doc.Projects = []model.Project{placeholderProject(skills)}
	}
	return doc
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// prioritizeSkills partitions candidate skills into high (required match),
// medium (preferred match), and low buckets, preserving the candidate's own
// ordering within each bucket, then truncates to MaxSkills.
func prioritizeSkills(candidate []string, requirements jobdesc.RequirementProfile) []model.Skill {
	required := lowerSet(requirements.RequiredSkills)
	preferred := lowerSet(requirements.PreferredSkills)

	var high, medium, low []model.Skill
	for _, name := range candidate {
		key := strings.ToLower(name)
		switch {
		case required[key]:
			high = append(high, model.Skill{Name: name, Priority: model.PriorityHigh})
		case preferred[key]:
			medium = append(medium, model.Skill{Name: name, Priority: model.PriorityMedium})
		default:
			low = append(low, model.Skill{Name: name, Priority: model.PriorityLow})
		}
	}

	out := make([]model.Skill, 0, len(candidate))
	out = append(out, high...)
	out = append(out, medium...)
	out = append(out, low...)
	if len(out) > model.MaxSkills {
		out = out[:model.MaxSkills]
	}
	return out
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}

const summaryTopSkillsMax = 5

func (e *Engine) buildSummary(profile model.CandidateProfile, requirements jobdesc.RequirementProfile, skills []model.Skill) string {
	years := totalExperienceYears(profile.Experience, e.now())

	var top []string
	for _, s := range skills {
		if s.Priority != model.PriorityHigh {
			break
		}
		top = append(top, s.Name)
		if len(top) == summaryTopSkillsMax {
			break
		}
	}
	// Pad with the candidate's strongest remaining skills so short matches
	// still read as a sentence.
	for _, s := range skills {
		if len(top) >= 3 {
			break
		}
		if s.Priority == model.PriorityHigh {
			continue
		}
		top = append(top, s.Name)
	}

	role := roleLabel(requirements.JobLevel)

	var b strings.Builder
	if years > 0 {
		fmt.Fprintf(&b, "%s with %d+ years of experience", role, years)
	} else {
		b.WriteString(role)
	}
	if len(top) > 0 {
		fmt.Fprintf(&b, ", skilled in %s", joinNatural(top))
	}
	fmt.Fprintf(&b, ". Focused on delivering results in the %s industry.", industryOrDefault(requirements.Industry))
	return b.String()
}

func roleLabel(level jobdesc.JobLevel) string {
	switch level {
	case jobdesc.LevelSenior:
		return "Senior professional"
	case jobdesc.LevelEntry:
		return "Motivated early-career professional"
	default:
		return "Experienced professional"
	}
}

func industryOrDefault(industry string) string {
	if trimmed := strings.TrimSpace(industry); trimmed != "" {
		return trimmed
	}
	return jobdesc.DefaultIndustry
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// totalExperienceYears sums the duration of every experience range, rounded
// down to whole years. Current jobs run until now.
func totalExperienceYears(entries []model.Experience, now time.Time) int {
	var total time.Duration
	for _, exp := range entries {
		if exp.StartDate.IsZero() {
			continue
		}
		end := now
		if !exp.IsCurrentJob && exp.EndDate != nil && !exp.EndDate.IsZero() {
			end = *exp.EndDate
		}
		if end.Before(exp.StartDate) {
			continue
		}
		total += end.Sub(exp.StartDate)
	}
	const yearHours = 365.25 * 24
	return int(total.Hours() / yearHours)
}

func placeholderExperience(now time.Time) model.Experience {
	return model.Experience{
		Title:        "Professional Experience",
		Company:      "Various",
		StartDate:    now.AddDate(-1, 0, 0),
		Description:  "Details available upon request.",
		IsCurrentJob: true,
	}
}

func placeholderEducation(now time.Time) model.Education {
	return model.Education{
		Degree:      "Education",
		Field:       "General Studies",
		Institution: "Details available upon request",
		StartDate:   now.AddDate(-4, 0, 0),
		IsCompleted: true,
	}
}

func placeholderProject(skills []model.Skill) model.Project {
	tech := make([]string, 0, 3)
	for _, s := range skills {
		tech = append(tech, s.Name)
		if len(tech) == 3 {
			break
		}
	}
	if len(tech) == 0 {
		tech = []string{"General"}
	}
	return model.Project{
		Name:         "Selected Work",
		Description:  "Portfolio available upon request.",
		Technologies: tech,
	}
}
