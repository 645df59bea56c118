// Package report flattens candidates into exportable rows.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Mazosolution/mazo-parser/internal/document"
	"github.com/Mazosolution/mazo-parser/internal/match"
)

// notSpecified fills columns a JD or resume left empty.
const notSpecified = "Not specified"

// Entry is one report row for one candidate against their best position.
type Entry struct {
	Index               int    `json:"index"`
	Position            string `json:"position"`
	FileName            string `json:"file_name"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	CandidateExperience string `json:"candidate_experience"`
	RequiredExperience  string `json:"required_experience"`
	CandidateSkills     string `json:"candidate_skills"`
	RequiredSkills      string `json:"required_skills"`
	MatchPercentage     int    `json:"match_percentage"`
	SkillStatus         string `json:"skill_status"`
	ExperienceStatus    string `json:"experience_status"`
}

// Build produces one row per candidate, in candidate order. Rows are scored
// against the candidate's best-matching position; a candidate without one
// gets an empty position and a zero score.
func Build(candidates *document.Candidates) []Entry {
	entries := make([]Entry, 0, candidates.Len())
	for i, candidate := range candidates.Items {
		best := document.PositionMatch{}
		if bm := candidate.BestMatch(); bm != nil {
			best = *bm
		}
		entries = append(entries, Entry{
			Index:               i + 1,
			Position:            candidate.BestMatchingPosition,
			FileName:            candidate.FileName,
			Name:                orNotSpecified(candidate.Name),
			Email:               orNotSpecified(candidate.Email),
			Phone:               orNotSpecified(candidate.Phone),
			CandidateExperience: orNotSpecified(candidate.Experience),
			RequiredExperience:  orNotSpecified(best.Experience),
			CandidateSkills:     strings.Join(candidate.Skills, ", "),
			RequiredSkills:      strings.Join(best.Skills, ", "),
			MatchPercentage:     candidate.MatchPercentage,
			SkillStatus:         match.SkillStatus(candidate.MatchPercentage),
			ExperienceStatus:    match.ExperienceStatus(candidate.Experience, best.Experience),
		})
	}
	return entries
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

var csvHeader = []string{
	"S.No", "Position", "File Name", "Name", "Email", "Phone",
	"Experience", "Required Experience", "Skills", "Required Skills",
	"Match %", "Status", "Experience Status",
}

// WriteCSV writes the rows with a header line.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			fmt.Sprintf("%d", e.Index),
			e.Position,
			e.FileName,
			e.Name,
			e.Email,
			e.Phone,
			e.CandidateExperience,
			e.RequiredExperience,
			e.CandidateSkills,
			e.RequiredSkills,
			fmt.Sprintf("%d%%", e.MatchPercentage),
			e.SkillStatus,
			e.ExperienceStatus,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", e.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders a compact aligned table for terminal display.
func WriteTable(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPOSITION\tNAME\tEMAIL\tPHONE\tMATCH\tSTATUS\tEXPERIENCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			e.Index, e.Position, e.Name, e.Email, e.Phone,
			e.MatchPercentage, e.SkillStatus, e.ExperienceStatus,
		)
	}
	return tw.Flush()
}
