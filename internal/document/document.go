package document

import (
	"encoding/json"
	"fmt"
	"os"
)

// Type tags a file as a resume or a job description.
type Type string

const (
	TypeResume Type = "resume"
	TypeJD     Type = "jd"
)

// Document holds the structured fields extracted from one job description.
// Skills keep their original order and casing; duplicates are not removed.
type Document struct {
	Title            string   `json:"title"`
	Skills           []string `json:"skills"`
	Experience       string   `json:"experience,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Resume holds the structured fields extracted from one resume file.
type Resume struct {
	Title      string   `json:"title,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
}

// PositionMatch is an immutable snapshot of one JD's requirements paired with
// the score computed against one candidate.
type PositionMatch struct {
	Title           string   `json:"title"`
	MatchPercentage int      `json:"match_percentage"`
	Experience      string   `json:"experience,omitempty"`
	Skills          []string `json:"skills"`
}

// Candidate aggregates one resume's extracted fields with its match results
// against every known job description. Candidates are replaced wholesale when
// the JD set changes; individual fields are never mutated after creation.
type Candidate struct {
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	Skills               []string        `json:"skills"`
	Experience           string          `json:"experience"`
	Education            string          `json:"education"`
	MatchPercentage      int             `json:"match_percentage"`
	FileName             string          `json:"file_name"`
	PositionMatches      []PositionMatch `json:"position_matches"`
	BestMatchingPosition string          `json:"best_matching_position"`
}

type Documents struct {
	Items []*Document
}

type Candidates struct {
	Items []*Candidate
}

func (d *Documents) Len() int {
	return len(d.Items)
}

func (d *Documents) Append(items ...*Document) {
	d.Items = append(d.Items, items...)
}

func (d *Documents) FindByTitle(title string) *Document {
	for _, doc := range d.Items {
		if doc.Title == title {
			return doc
		}
	}
	return nil
}

func (d *Documents) Titles() []string {
	titles := make([]string, 0, len(d.Items))
	for _, doc := range d.Items {
		titles = append(titles, doc.Title)
	}
	return titles
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) Append(items ...*Candidate) {
	c.Items = append(c.Items, items...)
}

func (c *Candidates) FindByFileName(name string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.FileName == name {
			return candidate
		}
	}
	return nil
}

// BestMatch returns the PositionMatch referenced by BestMatchingPosition, or
// nil when the candidate has no best match.
func (c *Candidate) BestMatch() *PositionMatch {
	if c.BestMatchingPosition == "" {
		return nil
	}
	for i := range c.PositionMatches {
		if c.PositionMatches[i].Title == c.BestMatchingPosition {
			return &c.PositionMatches[i]
		}
	}
	return nil
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByPosition groups candidates by their best-matching position title.
func (c *Candidates) ReportByPosition() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		key := candidate.BestMatchingPosition
		if key == "" {
			key = "(no match)"
		}
		report[key] = append(report[key], map[string]string{
			"name":       candidate.Name,
			"file":       candidate.FileName,
			"email":      candidate.Email,
			"phone":      candidate.Phone,
			"experience": candidate.Experience,
			"match":      fmt.Sprintf("%d%%", candidate.MatchPercentage),
		})
	}
	return report
}
