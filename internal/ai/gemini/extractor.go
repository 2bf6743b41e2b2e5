package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/ai/recovery"
	"github.com/spigell/nextstep/internal/logger"
	"github.com/spigell/nextstep/internal/profile"
)

// MaxResumeRunes bounds the resume text sent to the model.
const MaxResumeRunes = 20000

const stageExtract = "extract_profile"

//go:embed extract_prompt.md
var extractPromptTemplate string

// ExtractProfile asks the model for a structured profile. Absent or null
// fields stay nil in the returned partial.
func (a *Advisor) ExtractProfile(ctx context.Context, text string) (*profile.Partial, error) {
	raw, err := a.generate(ctx, stageExtract, buildExtractPrompt(text), nil)
	if err != nil {
		return nil, err
	}

	partial, err := decodePartial(raw)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("structured profile decoded",
		zap.String(logger.FieldStage, stageExtract),
		zap.Bool("has_name", partial.Name != nil),
		zap.Int("skills", len(partial.Skills)),
		zap.Int("education", len(partial.Education)),
		zap.Int("experience", len(partial.Experience)),
	)

	return partial, nil
}

func buildExtractPrompt(text string) string {
	return strings.ReplaceAll(extractPromptTemplate, "{{RESUME_TEXT}}", truncateRunes(text, MaxResumeRunes))
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func decodePartial(raw string) (*profile.Partial, error) {
	cleaned := recovery.Recover(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageExtract, ai.ErrMalformedOutput, err)
	}

	// A skills list returned as one delimited string is split so each skill
	// lands in its own entry. Scalar education and experience stay whole.
	if skills, ok := data["skills"].(string); ok {
		data["skills"] = splitSkills(skills)
	}

	var partial profile.Partial
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringifyHook,
		WeaklyTypedInput: true,
		Result:           &partial,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: build decoder: %w", stageExtract, err)
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageExtract, ai.ErrMalformedOutput, err)
	}

	partial.Skills = compact(partial.Skills)
	partial.Education = compact(partial.Education)
	partial.Experience = compact(partial.Experience)

	return &partial, nil
}

func splitSkills(s string) []any {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]any, 0, len(fields))
	for _, field := range fields {
		out = append(out, field)
	}
	return out
}

// stringifyHook renders nested objects as JSON when a string is expected,
// e.g. an education entry returned as {"degree": ..., "school": ...}.
func stringifyHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Map, reflect.Slice:
		return coerceString(data), nil
	default:
		return data, nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// compact trims entries and drops blanks, keeping nil for absent lists.
func compact(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
