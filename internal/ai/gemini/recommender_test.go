package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/career"
	"github.com/spigell/nextstep/internal/profile"
)

const threeRecommendations = `{"recommendations": [
  {"title": "Backend Engineer (Python Django)", "probability": 70, "explanation": "Built Django APIs", "supportingSkills": ["Python", "django", "Kotlin"]},
  {"title": "Data Analyst", "probability": 85, "explanation": "pandas reporting", "supportingSkills": ["pandas"]},
  {"title": "DevOps / Cloud Engineer (AWS)", "probability": 70.0, "explanation": "Docker on AWS", "supportingSkills": []}
]}`

func testProfile() profile.Profile {
	return profile.Profile{
		Name:   strPtr("Jane"),
		Skills: []string{"python", "Django", "pandas"},
	}
}

func TestRankCareersSortsAndFilters(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + threeRecommendations + "\n```"}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	set, err := advisor.RankCareers(context.Background(), testProfile())
	require.NoError(t, err)
	require.Len(t, set, career.SetSize)

	assert.Equal(t, "Data Analyst", set[0].Title)
	assert.Equal(t, 85, set[0].Probability)
	assert.Equal(t, "Backend Engineer (Python Django)", set[1].Title)
	assert.Equal(t, "DevOps / Cloud Engineer (AWS)", set[2].Title)
	assert.Equal(t, 70, set[2].Probability)

	assert.Equal(t, []string{"python", "Django"}, set[1].SupportingSkills)
	assert.Empty(t, set[2].SupportingSkills)
}

func TestRankCareersPromptAndSchema(t *testing.T) {
	stub := &stubGenerator{response: threeRecommendations}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	_, err := advisor.RankCareers(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Contains(t, stub.prompt, `"skills":["python","Django","pandas"]`)
	assert.Contains(t, stub.prompt, career.Taxonomy[0])
	assert.Contains(t, stub.prompt, "EXACTLY 3")
	assert.Contains(t, stub.prompt, "50..95")
	assert.NotContains(t, stub.prompt, "{{")

	require.NotNil(t, stub.schema)
	recs := stub.schema.Properties["recommendations"]
	require.NotNil(t, recs)
	assert.Equal(t, genai.TypeArray, recs.Type)
	require.NotNil(t, recs.MinItems)
	require.NotNil(t, recs.MaxItems)
	assert.EqualValues(t, 3, *recs.MinItems)
	assert.EqualValues(t, 3, *recs.MaxItems)
	assert.EqualValues(t, 50, *recs.Items.Properties["probability"].Minimum)
	assert.EqualValues(t, 95, *recs.Items.Properties["probability"].Maximum)
}

func TestRankCareersRejectsIncompleteSets(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "two items", response: `{"recommendations": [
			{"title": "A", "probability": 60, "explanation": "x", "supportingSkills": []},
			{"title": "B", "probability": 60, "explanation": "y", "supportingSkills": []}]}`},
		{name: "probability out of range", response: `{"recommendations": [
			{"title": "A", "probability": 99, "explanation": "x", "supportingSkills": []},
			{"title": "B", "probability": 60, "explanation": "y", "supportingSkills": []},
			{"title": "C", "probability": 60, "explanation": "z", "supportingSkills": []}]}`},
		{name: "blank title", response: `{"recommendations": [
			{"title": "  ", "probability": 60, "explanation": "x", "supportingSkills": []},
			{"title": "B", "probability": 60, "explanation": "y", "supportingSkills": []},
			{"title": "C", "probability": 60, "explanation": "z", "supportingSkills": []}]}`},
		{name: "missing supporting skills", response: `{"recommendations": [
			{"title": "A", "probability": 60, "explanation": "x"},
			{"title": "B", "probability": 60, "explanation": "y", "supportingSkills": []},
			{"title": "C", "probability": 60, "explanation": "z", "supportingSkills": []}]}`},
		{name: "bare array", response: `[]`},
		{name: "prose", response: `I think you should be a plumber.`},
		{name: "empty", response: ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response}
			advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

			set, err := advisor.RankCareers(context.Background(), testProfile())
			assert.ErrorIs(t, err, ai.ErrMalformedOutput)
			assert.Nil(t, set)
		})
	}
}

func TestRankCareersProviderFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("connection reset")}
	advisor := NewAdvisor(stub, 0, 0, zap.NewNop())

	set, err := advisor.RankCareers(context.Background(), testProfile())
	assert.ErrorIs(t, err, ai.ErrProviderCall)
	assert.Equal(t, "provider_call_failure", ai.Kind(err))
	assert.Nil(t, set)
}
