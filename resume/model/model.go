// Package model defines the canonical resume document and candidate profile
// shapes shared by the tailoring engine and the rendering pipeline.
package model

import (
	"strings"
	"time"
)

// SkillPriority orders skills by relevance to the target job.
type SkillPriority string

const (
	PriorityHigh   SkillPriority = "high"
	PriorityMedium SkillPriority = "medium"
	PriorityLow    SkillPriority = "low"
)

// MaxSkills caps the skill list on a tailored document.
const MaxSkills = 12

// PersonalInfo is the contact block at the top of a resume.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Location  string `json:"location,omitempty"`
}

// FullName joins first and last name, tolerating either being empty.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Skill is a single prioritized skill entry.
type Skill struct {
	Name     string        `json:"name"`
	Priority SkillPriority `json:"priority"`
}

// Experience is a work history entry.
type Experience struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Description  string     `json:"description"`
	IsCurrentJob bool       `json:"isCurrentJob"`
}

// Education is a study history entry.
type Education struct {
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Institution string     `json:"institution"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	GPA         string     `json:"gpa,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
}

// Project is a notable project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ResumeDocument is a tailored resume. Instances are created per tailoring
// invocation and never mutated afterwards; re-tailoring produces a new one.
type ResumeDocument struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Skills       []Skill      `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
}

// CandidateProfile is the stored profile data for a candidate, as returned by
// the profile provider.
type CandidateProfile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Headline     string       `json:"headline,omitempty"`
	Skills       []string     `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
}

// Normalize fills unsafe zero values on a profile coming from the boundary so
// internal logic never branches on missing optional fields.
func (p CandidateProfile) Normalize() CandidateProfile {
	if strings.TrimSpace(p.PersonalInfo.FirstName) == "" && strings.TrimSpace(p.PersonalInfo.LastName) == "" {
		p.PersonalInfo.FirstName = "Candidate"
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	cleaned := p.Skills[:0:0]
	for _, s := range p.Skills {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	p.Skills = cleaned
	return p
}
