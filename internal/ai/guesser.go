package ai

import (
	"context"

	"github.com/Mazosolution/mazo-parser/internal/document"
)

// FieldGuess is the structured first-pass guess produced by an external
// language model for one document. Every field is best-effort; consumers must
// treat missing values as empty rather than errors.
type FieldGuess struct {
	Title            string   `json:"title" mapstructure:"title"`
	Name             string   `json:"name" mapstructure:"name"`
	Email            string   `json:"email" mapstructure:"email"`
	Phone            string   `json:"phone" mapstructure:"phone"`
	Skills           []string `json:"skills" mapstructure:"skills"`
	Experience       string   `json:"experience" mapstructure:"experience"`
	Education        string   `json:"education" mapstructure:"education"`
	Responsibilities []string `json:"responsibilities" mapstructure:"responsibilities"`
}

// Guesser is the capability interface for the external field-guessing
// collaborator. Implementations may be remote model endpoints or test
// doubles returning deterministic fixtures.
type Guesser interface {
	GuessFields(ctx context.Context, text string, docType document.Type) (*FieldGuess, error)
}
