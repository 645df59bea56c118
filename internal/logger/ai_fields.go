package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider tags guesser log entries with the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel tags guesser log entries with the model identifier.
	FieldModel = "ai_model"
)

// StringField is one string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and dropping entries with blank keys or values so guesser logs stay compact
// when configuration is partial.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithCommonFields tags the logger with the field guesser's provider and
// model. A nil logger becomes a no-op logger so guesser construction never
// panics.
func WithCommonFields(log *zap.Logger, provider, model string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
	if len(fields) == 0 {
		return log
	}

	return log.With(fields...)
}
