package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Mazosolution/mazo-parser/internal/document"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestGuessFieldsResume(t *testing.T) {
	stub := &stubGenerator{response: `{
		"name": "John Smith",
		"email": "john@example.com",
		"phone": "+12345678900",
		"skills": ["Go", "Python"],
		"experience": "5",
		"education": "BS Computer Science"
	}`}
	guesser := NewGuesser(stub, zap.NewNop(), 0)

	guess, err := guesser.GuessFields(context.Background(), "resume text", document.TypeResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if guess.Name != "John Smith" {
		t.Fatalf("unexpected name: %q", guess.Name)
	}
	if len(guess.Skills) != 2 || guess.Skills[0] != "Go" {
		t.Fatalf("unexpected skills: %v", guess.Skills)
	}
	if guess.Experience != "5" {
		t.Fatalf("unexpected experience: %q", guess.Experience)
	}

	if !strings.Contains(stub.lastPrompt, "resume text") {
		t.Fatalf("expected document text in prompt")
	}
}

func TestGuessFieldsWrapsScalarSkills(t *testing.T) {
	stub := &stubGenerator{response: `{"title": "DevOps Engineer", "skills": "Kubernetes", "responsibilities": "Run clusters"}`}
	guesser := NewGuesser(stub, zap.NewNop(), 0)

	guess, err := guesser.GuessFields(context.Background(), "jd text", document.TypeJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(guess.Skills) != 1 || guess.Skills[0] != "Kubernetes" {
		t.Fatalf("expected scalar skill wrapped, got %v", guess.Skills)
	}
	if len(guess.Responsibilities) != 1 || guess.Responsibilities[0] != "Run clusters" {
		t.Fatalf("expected scalar responsibility wrapped, got %v", guess.Responsibilities)
	}
}

func TestGuessFieldsCoercesNumericExperience(t *testing.T) {
	stub := &stubGenerator{response: `{"title": "Backend Engineer", "skills": ["Go"], "experience": 5}`}
	guesser := NewGuesser(stub, zap.NewNop(), 0)

	guess, err := guesser.GuessFields(context.Background(), "jd text", document.TypeJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if guess.Experience != "5" {
		t.Fatalf("expected experience coerced to string, got %q", guess.Experience)
	}
}

func TestGuessFieldsStripsMarkdownFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"title\": \"QA Engineer\", \"skills\": [\"Selenium\"]}\n```"}
	guesser := NewGuesser(stub, zap.NewNop(), 0)

	guess, err := guesser.GuessFields(context.Background(), "jd text", document.TypeJD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if guess.Title != "QA Engineer" {
		t.Fatalf("unexpected title: %q", guess.Title)
	}
}

func TestGuessFieldsPropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("backend unavailable")
	guesser := NewGuesser(&stubGenerator{err: wantErr}, zap.NewNop(), 0)

	_, err := guesser.GuessFields(context.Background(), "text", document.TypeResume)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestGuessFieldsRejectsMalformedJSON(t *testing.T) {
	guesser := NewGuesser(&stubGenerator{response: "not json"}, zap.NewNop(), 0)

	if _, err := guesser.GuessFields(context.Background(), "text", document.TypeResume); err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestGuessFieldsUnknownDocumentType(t *testing.T) {
	guesser := NewGuesser(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := guesser.GuessFields(context.Background(), "text", document.Type("contract")); err == nil {
		t.Fatal("expected error for unknown document type")
	}
}
