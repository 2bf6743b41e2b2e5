// Package career models ranked role recommendations and the checks applied to
// them before they reach a caller.
package career

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// SetSize is the number of recommendations in a complete set.
	SetSize = 3
	// MinProbability and MaxProbability bound a recommendation's confidence.
	MinProbability = 50
	MaxProbability = 95
)

// Taxonomy is the list of role categories recommendations are steered toward.
var Taxonomy = []string{
	"Web/Frontend Developer (React/Vue/Angular)",
	"Backend Engineer (Node.js/Java Spring/Python Django/Flask/FastAPI)",
	"Full Stack Developer (specify major frontend + backend)",
	"Mobile Developer (Android/iOS/Flutter/React Native)",
	"Machine Learning Engineer",
	"Data Engineer",
	"Data Analyst / Business Intelligence",
	"DevOps / Cloud Engineer (AWS/Azure/GCP, Docker, Kubernetes)",
	"UI/UX Designer",
	"Product Designer",
}

// Recommendation is one suggested role.
type Recommendation struct {
	Title            string   `json:"title" mapstructure:"title" validate:"required"`
	Probability      int      `json:"probability" mapstructure:"probability" validate:"min=50,max=95"`
	Explanation      string   `json:"explanation" mapstructure:"explanation" validate:"required"`
	SupportingSkills []string `json:"supportingSkills" mapstructure:"supportingSkills"`
}

// Set is a complete, ranked list of recommendations.
type Set []Recommendation

// Envelope is the object shape the model is asked to produce.
type Envelope struct {
	Recommendations []Recommendation `json:"recommendations" mapstructure:"recommendations" validate:"len=3,dive"`
}

// Result pairs recommendations with the profile skills they were derived from.
type Result struct {
	Skills          []string `json:"skills"`
	Recommendations Set      `json:"recommendations"`
}

var validate = validator.New()

// NewResult builds a result, copying skills and substituting empty slices for nil.
func NewResult(skills []string, set Set) Result {
	out := make([]string, len(skills))
	copy(out, skills)
	if set == nil {
		set = Set{}
	}
	return Result{Skills: out, Recommendations: set}
}

// Validate checks the envelope holds exactly three well-formed entries.
// Titles and explanations are trimmed before checking.
func Validate(env *Envelope) error {
	for i := range env.Recommendations {
		env.Recommendations[i].Title = strings.TrimSpace(env.Recommendations[i].Title)
		env.Recommendations[i].Explanation = strings.TrimSpace(env.Recommendations[i].Explanation)
	}
	return validate.Struct(env)
}

// Normalize restricts supporting skills to the profile's skills and orders the
// entries by descending probability, keeping model order on ties.
func Normalize(recs []Recommendation, skills []string) Set {
	known := make(map[string]string, len(skills))
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := known[key]; !ok {
			known[key] = s
		}
	}

	out := make(Set, len(recs))
	for i, rec := range recs {
		rec.SupportingSkills = filterSkills(rec.SupportingSkills, known)
		out[i] = rec
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out
}

func filterSkills(candidates []string, known map[string]string) []string {
	kept := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c))
		original, ok := known[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, original)
	}
	return kept
}
