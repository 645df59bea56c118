package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/Mazosolution/mazo-parser/internal/document"
)

func sampleCandidates() *document.Candidates {
	candidates := &document.Candidates{}
	candidates.Append(
		&document.Candidate{
			Name:            "Jane Doe",
			Email:           "jane@co.com",
			Phone:           "+919876543210",
			Skills:          []string{"python", "docker", "Go"},
			Experience:      "3",
			MatchPercentage: 67,
			FileName:        "jane.pdf",
			PositionMatches: []document.PositionMatch{
				{Title: "Python Developer", MatchPercentage: 67, Experience: "5", Skills: []string{"Python", "AWS", "Docker"}},
			},
			BestMatchingPosition: "Python Developer",
		},
		&document.Candidate{
			Name:     "",
			FileName: "anon.docx",
			Skills:   []string{"Rust"},
		},
	)
	return candidates
}

func TestBuild(t *testing.T) {
	entries := Build(sampleCandidates())
	if len(entries) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(entries))
	}

	first := entries[0]
	if first.Index != 1 || first.Position != "Python Developer" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.RequiredExperience != "5" {
		t.Fatalf("expected JD experience on the row, got %q", first.RequiredExperience)
	}
	if first.CandidateSkills != "python, docker, Go" {
		t.Fatalf("unexpected candidate skills: %q", first.CandidateSkills)
	}
	if first.RequiredSkills != "Python, AWS, Docker" {
		t.Fatalf("unexpected required skills: %q", first.RequiredSkills)
	}
	if first.SkillStatus != "Select" {
		t.Fatalf("unexpected skill status: %q", first.SkillStatus)
	}
	if first.ExperienceStatus != "Consider" {
		t.Fatalf("unexpected experience status: %q", first.ExperienceStatus)
	}

	second := entries[1]
	if second.Name != "Not specified" {
		t.Fatalf("expected fallback for empty name, got %q", second.Name)
	}
	if second.RequiredExperience != "Not specified" {
		t.Fatalf("expected fallback for missing JD experience, got %q", second.RequiredExperience)
	}
	if second.SkillStatus != "Reject" {
		t.Fatalf("unexpected skill status for no-match candidate: %q", second.SkillStatus)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Build(sampleCandidates())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "S.No" || records[0][1] != "Position" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][10] != "67%" {
		t.Fatalf("unexpected match column: %q", records[1][10])
	}
	if records[1][3] != "Jane Doe" {
		t.Fatalf("unexpected name column: %q", records[1][3])
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, Build(sampleCandidates())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Python Developer") || !strings.Contains(out, "67%") {
		t.Fatalf("table missing expected cells:\n%s", out)
	}
	if !strings.Contains(out, "POSITION") {
		t.Fatalf("table missing header:\n%s", out)
	}
}
