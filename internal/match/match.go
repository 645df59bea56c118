// Package match scores candidate skills against job descriptions.
package match

import (
	"math"
	"strings"

	"github.com/Mazosolution/mazo-parser/internal/document"
)

// Skill-based statuses derived from the match percentage.
const (
	StatusReject = "Reject"
	StatusHold   = "Hold"
	StatusSelect = "Select"
)

// Experience-based statuses derived from candidate vs required years.
const (
	ExperienceQualified    = "Qualified"
	ExperienceConsider     = "Consider"
	ExperienceNotQualified = "Not Qualified"
)

// considerSlack is how many years short of the requirement still counts as
// worth a look.
const considerSlack = 2

// skillsOverlap reports whether one skill contains the other, ignoring case.
// Containment runs both ways, so "React" pairs with "React.js". Very short
// skills ("C", "R") will pair with almost anything; that imprecision is part
// of the scoring contract.
func skillsOverlap(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Percentage scores a candidate against one position: every candidate skill
// that overlaps some required skill counts once, over the number of required
// skills. A candidate list with more matching entries than requirements would
// push the ratio past 1, so the result is clamped to 100. A position with no
// required skills scores 0.
func Percentage(candidate, required []string) int {
	if len(required) == 0 {
		return 0
	}
	matching := 0
	for _, skill := range candidate {
		for _, req := range required {
			if skillsOverlap(skill, req) {
				matching++
				break
			}
		}
	}
	percentage := int(math.Round(float64(matching) / float64(len(required)) * 100))
	if percentage > 100 {
		percentage = 100
	}
	return percentage
}

// SkillStatus classifies a match percentage.
func SkillStatus(percentage int) string {
	switch {
	case percentage <= 40:
		return StatusReject
	case percentage <= 60:
		return StatusHold
	default:
		return StatusSelect
	}
}

// ExperienceStatus compares candidate years against the required years.
// Non-numeric strings parse as 0 years.
func ExperienceStatus(candidate, required string) string {
	have := parseYears(candidate)
	want := parseYears(required)
	switch {
	case have >= want:
		return ExperienceQualified
	case have >= want-considerSlack:
		return ExperienceConsider
	default:
		return ExperienceNotQualified
	}
}

// parseYears reads the leading integer of a free-form experience string, so
// "5 years" is 5 and "five years" is 0.
func parseYears(s string) int {
	s = strings.TrimSpace(s)
	years := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		years = years*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return years
}

// Positions scores one resume against every job description, in JD order.
func Positions(resume *document.Resume, jds *document.Documents) []document.PositionMatch {
	matches := make([]document.PositionMatch, 0, jds.Len())
	for _, jd := range jds.Items {
		matches = append(matches, document.PositionMatch{
			Title:           jd.Title,
			MatchPercentage: Percentage(resume.Skills, jd.Skills),
			Experience:      jd.Experience,
			Skills:          jd.Skills,
		})
	}
	return matches
}

// Best picks the position with the strictly greatest percentage; the first
// entry wins ties. With no matches it returns the empty sentinel.
func Best(matches []document.PositionMatch) document.PositionMatch {
	best := document.PositionMatch{}
	first := true
	for _, m := range matches {
		if first || m.MatchPercentage > best.MatchPercentage {
			best = m
			first = false
		}
	}
	if first {
		return document.PositionMatch{}
	}
	return best
}

// BuildCandidate assembles the full match record for one parsed resume.
func BuildCandidate(resume *document.Resume, jds *document.Documents) *document.Candidate {
	matches := Positions(resume, jds)
	best := Best(matches)
	return &document.Candidate{
		Name:                 resume.Name,
		Email:                resume.Email,
		Phone:                resume.Phone,
		Skills:               resume.Skills,
		Experience:           resume.Experience,
		Education:            resume.Education,
		MatchPercentage:      best.MatchPercentage,
		FileName:             resume.FileName,
		PositionMatches:      matches,
		BestMatchingPosition: best.Title,
	}
}
