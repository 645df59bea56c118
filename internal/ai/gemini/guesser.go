package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Mazosolution/mazo-parser/internal/ai"
	"github.com/Mazosolution/mazo-parser/internal/document"
	"github.com/Mazosolution/mazo-parser/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Guesser implements ai.Guesser on top of a Gemini content generator.
type Guesser struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt_resume.md
var resumePromptTemplate string

//go:embed prompt_jd.md
var jdPromptTemplate string

const defaultMaxLogLength = 200

func NewGuesser(generator contentGenerator, log *zap.Logger, maxLogLength int) *Guesser {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Guesser{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// GuessFields sends the document text to Gemini and decodes the structured
// guess. Scalar skills/responsibilities values are wrapped into one-element
// sequences; any other shape sloppiness is absorbed by weak decoding.
func (g *Guesser) GuessFields(ctx context.Context, text string, docType document.Type) (*ai.FieldGuess, error) {
	prompt, err := buildPrompt(text, docType)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini field guess request",
		zap.String("document_type", string(docType)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini field guess response",
		zap.String("document_type", string(docType)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(text string, docType document.Type) (string, error) {
	var template string
	switch docType {
	case document.TypeResume:
		template = resumePromptTemplate
	case document.TypeJD:
		template = jdPromptTemplate
	default:
		return "", fmt.Errorf("unsupported document type: %s", docType)
	}

	return strings.ReplaceAll(template, "{{DOCUMENT_TEXT}}", text), nil
}

func parseResponse(raw string) (*ai.FieldGuess, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	// Models occasionally return a bare string where a list is expected.
	wrapScalar(data, "skills")
	wrapScalar(data, "responsibilities")

	var guess ai.FieldGuess
	cfg := &mapstructure.DecoderConfig{
		Result:           &guess,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	return &guess, nil
}

func wrapScalar(data map[string]any, key string) {
	value, ok := data[key]
	if !ok || value == nil {
		return
	}
	if _, isSlice := value.([]any); isSlice {
		return
	}
	data[key] = []any{value}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
