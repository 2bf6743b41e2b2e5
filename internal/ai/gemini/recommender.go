package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/ai/recovery"
	"github.com/spigell/nextstep/internal/career"
	"github.com/spigell/nextstep/internal/logger"
	"github.com/spigell/nextstep/internal/profile"
)

const stageRecommend = "recommend_careers"

var (
	//go:embed recommend_prompt.md
	recommendPromptTemplate string

	//go:embed recommendations.schema.json
	recommendationsSchemaJSON string

	recommendationsSchema = mustCompileSchema(recommendationsSchemaJSON)
)

// RankCareers asks the model for exactly three recommendations constrained by
// a response schema. The reply is validated again locally; anything short of a
// complete set is reported as ai.ErrMalformedOutput.
func (a *Advisor) RankCareers(ctx context.Context, p profile.Profile) (career.Set, error) {
	prompt, err := buildRecommendPrompt(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stageRecommend, err)
	}

	raw, err := a.generate(ctx, stageRecommend, prompt, responseSchema())
	if err != nil {
		return nil, err
	}

	set, err := decodeRecommendations(raw, p.Skills)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("career recommendations decoded",
		zap.String(logger.FieldStage, stageRecommend),
		zap.String("top_title", set[0].Title),
		zap.Int("top_probability", set[0].Probability),
	)

	return set, nil
}

func buildRecommendPrompt(p profile.Profile) (string, error) {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	taxonomy := make([]string, 0, len(career.Taxonomy))
	for _, role := range career.Taxonomy {
		taxonomy = append(taxonomy, "- "+role)
	}

	prompt := strings.NewReplacer(
		"{{TAXONOMY}}", strings.Join(taxonomy, "\n"),
		"{{MIN_PROBABILITY}}", strconv.Itoa(career.MinProbability),
		"{{MAX_PROBABILITY}}", strconv.Itoa(career.MaxProbability),
		"{{SET_SIZE}}", strconv.Itoa(career.SetSize),
		"{{PROFILE_JSON}}", string(profileJSON),
	).Replace(recommendPromptTemplate)

	return prompt, nil
}

// responseSchema mirrors recommendations.schema.json in the provider's schema dialect.
func responseSchema() *genai.Schema {
	setSize := int64(career.SetSize)
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"recommendations"},
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type:        genai.TypeArray,
				Description: "Exactly 3 career recommendations ranked by fit",
				MinItems:    &setSize,
				MaxItems:    &setSize,
				Items: &genai.Schema{
					Type:             genai.TypeObject,
					Required:         []string{"title", "probability", "explanation", "supportingSkills"},
					PropertyOrdering: []string{"title", "probability", "explanation", "supportingSkills"},
					Properties: map[string]*genai.Schema{
						"title": {
							Type:        genai.TypeString,
							Description: "Specific job title with tech stack (e.g., 'Frontend Developer (React)')",
						},
						"probability": {
							Type:        genai.TypeInteger,
							Description: "Confidence score between 50-95 based on resume evidence",
							Minimum:     genai.Ptr(float64(career.MinProbability)),
							Maximum:     genai.Ptr(float64(career.MaxProbability)),
						},
						"explanation": {
							Type:        genai.TypeString,
							Description: "Detailed explanation referencing specific skills and experience from resume",
						},
						"supportingSkills": {
							Type:        genai.TypeArray,
							Description: "List of candidate's skills that support this role recommendation",
							Items:       &genai.Schema{Type: genai.TypeString},
						},
					},
				},
			},
		},
	}
}

func decodeRecommendations(raw string, skills []string) (career.Set, error) {
	cleaned := recovery.Recover(raw)

	result, err := recommendationsSchema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageRecommend, ai.ErrMalformedOutput, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%s: %w: %s", stageRecommend, ai.ErrMalformedOutput, describeSchemaErrors(result.Errors()))
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageRecommend, ai.ErrMalformedOutput, err)
	}

	var envelope career.Envelope
	if err := mapstructure.WeakDecode(data, &envelope); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageRecommend, ai.ErrMalformedOutput, err)
	}

	if err := career.Validate(&envelope); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", stageRecommend, ai.ErrMalformedOutput, err)
	}

	return career.Normalize(envelope.Recommendations, skills), nil
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		field := e.Field()
		if field == "" {
			field = "(root)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Description()))
	}
	return strings.Join(parts, "; ")
}

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile recommendations schema: %v", err))
	}
	return schema
}
