package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the LM provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the LM model identifier.
	FieldModel = "ai_model"
	// FieldStage names the pipeline stage that produced the entry.
	FieldStage = "stage"
	// FieldFallback is set when a stage degraded to its fallback value.
	FieldFallback = "fallback"
	// FieldRequestID carries the HTTP request id when one exists.
	FieldRequestID = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns standard zap fields that describe the LM provider and model.
// Empty values are ignored to keep log entries compact when information is missing.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the common LM fields to the provided logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// FallbackFields describes a stage that degraded instead of failing. kind is a
// short error label such as "provider_call_failure".
func FallbackFields(stage, kind string, err error) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldStage, Value: stage},
		StringField{Key: FieldFallback, Value: kind},
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
