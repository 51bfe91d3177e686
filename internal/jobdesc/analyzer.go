package jobdesc

import (
	"context"
	"strings"
)

// KeywordAnalyzer is the deterministic, always-available analyzer. It is a
// pure function over the static keyword dictionary and never fails: text with
// no recognizable signal yields an empty-but-valid profile.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer constructs the deterministic analyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze extracts a RequirementProfile from the posting text.
func (a *KeywordAnalyzer) Analyze(_ context.Context, text string) RequirementProfile {
	lower := strings.ToLower(text)

	required, preferred := extractSkills(lower)

	profile := RequirementProfile{
		RequiredSkills:   required,
		PreferredSkills:  preferred,
		JobLevel:         detectLevel(lower),
		Industry:         detectIndustry(lower),
		Responsibilities: extractSection(text, responsibilityHeaders),
		Qualifications:   extractSection(text, qualificationHeaders),
	}
	return profile
}

func extractSkills(lower string) (required, preferred []string) {
	preferredZones := preferredLineSpans(lower)

	seen := make(map[string]bool, 16)
	for _, sk := range skillKeywords {
		idx := keywordIndex(lower, sk.keyword)
		if idx < 0 || seen[sk.canonical] {
			continue
		}
		seen[sk.canonical] = true

		if inSpans(preferredZones, idx) || len(required) >= requiredSkillCap {
			preferred = append(preferred, sk.canonical)
			continue
		}
		required = append(required, sk.canonical)
	}
	return required, preferred
}

// keywordIndex returns the byte offset of the first word-bounded occurrence
// of keyword in text, or -1. Boundaries only apply to letters and digits, so
// "java" never matches inside "javascript" but "c++" still matches after a
// space.
func keywordIndex(text, keyword string) int {
	from := 0
	for {
		rel := strings.Index(text[from:], keyword)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		before := idx - 1
		after := idx + len(keyword)
		boundedLeft := before < 0 || !isWordByte(text[before])
		boundedRight := after >= len(text) || !isWordByte(text[after])
		if needsBoundary(keyword) && (!boundedLeft || !boundedRight) {
			from = idx + 1
			continue
		}
		return idx
	}
}

func needsBoundary(keyword string) bool {
	for i := 0; i < len(keyword); i++ {
		if !isWordByte(keyword[i]) && keyword[i] != ' ' {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

type span struct{ start, end int }

var preferredCues = []string{"nice to have", "preferred", "bonus", "a plus", "good to have", "desirable"}

// preferredLineSpans returns the byte ranges of lines that mark skills as
// preferred rather than required. Once a "nice to have" style header is seen,
// everything after it counts until a blank-line separated new header.
func preferredLineSpans(lower string) []span {
	var spans []span
	offset := 0
	inPreferredBlock := false
	for _, line := range strings.Split(lower, "\n") {
		lineEnd := offset + len(line)
		trimmed := strings.TrimSpace(line)

		if isHeaderLine(trimmed) {
			inPreferredBlock = hasAnyCue(trimmed)
		}
		if inPreferredBlock || hasAnyCue(trimmed) {
			spans = append(spans, span{start: offset, end: lineEnd})
		}
		offset = lineEnd + 1
	}
	return spans
}

func hasAnyCue(line string) bool {
	for _, cue := range preferredCues {
		if strings.Contains(line, cue) {
			return true
		}
	}
	return false
}

func inSpans(spans []span, idx int) bool {
	for _, s := range spans {
		if idx >= s.start && idx < s.end {
			return true
		}
	}
	return false
}

func detectLevel(lower string) JobLevel {
	// Entry markers win over senior markers: "junior engineer reporting to a
	// senior lead" is still a junior posting.
	for _, m := range entryMarkers {
		if strings.Contains(lower, m) {
			return LevelEntry
		}
	}
	for _, m := range seniorMarkers {
		if strings.Contains(lower, m) {
			return LevelSenior
		}
	}
	return LevelMid
}

func detectIndustry(lower string) string {
	for _, m := range industryMarkers {
		if strings.Contains(lower, m.keyword) {
			return m.industry
		}
	}
	return DefaultIndustry
}

var responsibilityHeaders = []string{"responsibilities", "what you will do", "what you'll do", "your role", "duties", "the role"}

var qualificationHeaders = []string{"qualifications", "requirements", "what we are looking for", "what we're looking for", "must have", "who you are"}

const maxSectionItems = 10

// extractSection collects bullet items that follow one of the given section
// headers, stopping at the next header-looking line.
func extractSection(text string, headers []string) []string {
	var items []string
	collecting := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lowerLine := strings.ToLower(trimmed)

		if isHeaderLine(trimmed) {
			collecting = false
			for _, h := range headers {
				if strings.Contains(lowerLine, h) {
					collecting = true
					break
				}
			}
			continue
		}

		if !collecting || len(items) >= maxSectionItems {
			continue
		}
		if item := stripBullet(trimmed); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// isHeaderLine treats short lines without terminal punctuation, or lines
// ending in a colon, as section headers.
func isHeaderLine(line string) bool {
	if strings.HasSuffix(line, ":") {
		return true
	}
	if len(line) > 48 {
		return false
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return false
	}
	return !strings.ContainsAny(line, ".!?") && len(strings.Fields(line)) <= 6
}

func stripBullet(line string) string {
	line = strings.TrimLeft(line, "-*•· \t")
	return strings.TrimSpace(line)
}

var _ Analyzer = (*KeywordAnalyzer)(nil)
