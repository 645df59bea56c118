// Package parser turns one uploaded file into a typed record by combining an
// external field guess with locally computed contact heuristics.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mazosolution/mazo-parser/internal/ai"
	"github.com/Mazosolution/mazo-parser/internal/document"
	"github.com/Mazosolution/mazo-parser/internal/extract"
	"github.com/Mazosolution/mazo-parser/internal/textract"
	"github.com/Mazosolution/mazo-parser/internal/utils"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

type Parser struct {
	guesser     ai.Guesser
	logger      *zap.Logger
	maxAttempts int
	baseDelay   time.Duration
}

func New(guesser ai.Guesser, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		guesser:     guesser,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

// ParseResume extracts text from the file, obtains a field guess under the
// retry policy, and merges it with local heuristics. Locally extracted
// name/email/phone take precedence; the guess fills only empty fields.
func (p *Parser) ParseResume(ctx context.Context, file textract.File) (*document.Resume, error) {
	text, guess, err := p.guessFields(ctx, file, document.TypeResume)
	if err != nil {
		return nil, err
	}

	name := extract.Name(text)
	contact := extract.ContactInfo(text)

	resume := &document.Resume{
		Title:      guess.Title,
		Name:       fallback(name, guess.Name),
		Email:      fallback(contact.Email, guess.Email),
		Phone:      fallback(contact.Phone, guess.Phone),
		Skills:     nonNil(guess.Skills),
		Experience: guess.Experience,
		Education:  guess.Education,
		FileName:   file.Name,
	}

	p.logger.Debug("parsed resume",
		zap.String("file", file.Name),
		zap.String("name", resume.Name),
		zap.Int("skills", len(resume.Skills)),
	)

	return resume, nil
}

// ParseJD extracts text from the file and obtains a field guess under the
// retry policy. Job descriptions carry no contact fields.
func (p *Parser) ParseJD(ctx context.Context, file textract.File) (*document.Document, error) {
	_, guess, err := p.guessFields(ctx, file, document.TypeJD)
	if err != nil {
		return nil, err
	}

	// A JD without a usable title would be unreachable in reports, so the
	// file name stands in.
	title := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))

	jd := &document.Document{
		Title:            fallback(guess.Title, title),
		Skills:           nonNil(guess.Skills),
		Experience:       guess.Experience,
		Responsibilities: nonNil(guess.Responsibilities),
	}

	p.logger.Debug("parsed job description",
		zap.String("file", file.Name),
		zap.String("title", jd.Title),
		zap.Int("skills", len(jd.Skills)),
	)

	return jd, nil
}

func (p *Parser) guessFields(ctx context.Context, file textract.File, docType document.Type) (string, *ai.FieldGuess, error) {
	text, err := textract.Extract(file)
	if err != nil {
		return "", nil, err
	}

	guess, err := utils.Retry(ctx, p.maxAttempts, p.baseDelay, func() (*ai.FieldGuess, error) {
		return p.guesser.GuessFields(ctx, text, docType)
	})
	if err != nil {
		return "", nil, fmt.Errorf("guessing fields for %s: %w", file.Name, err)
	}

	return text, guess, nil
}

func fallback(local, guessed string) string {
	if local != "" {
		return local
	}
	return guessed
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
