// Package jobdesc extracts a structured requirement profile from raw
// job-posting text.
package jobdesc

import "context"

// JobLevel classifies the seniority a posting asks for.
type JobLevel string

const (
	LevelEntry  JobLevel = "entry"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
)

// RequirementProfile is the structured view of a job description. It is
// immutable once produced.
type RequirementProfile struct {
	RequiredSkills   []string `json:"requiredSkills"`
	PreferredSkills  []string `json:"preferredSkills"`
	JobLevel         JobLevel `json:"jobLevel"`
	Industry         string   `json:"industry"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
}

// Analyzer turns free job-posting text into a RequirementProfile.
type Analyzer interface {
	Analyze(ctx context.Context, text string) RequirementProfile
}
