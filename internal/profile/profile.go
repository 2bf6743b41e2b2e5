// Package profile holds the candidate profile built from one resume and the
// rules for combining heuristic and model-derived fields.
package profile

import "strings"

// Profile is the final candidate data for one document. Optional strings are
// nil when unknown; sequences are never nil so they encode as [].
type Profile struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
}

// Partial is a profile as returned by the language model. Every field may be
// absent; absence is kept as nil rather than replaced with defaults.
type Partial struct {
	Name       *string  `json:"name" mapstructure:"name"`
	Email      *string  `json:"email" mapstructure:"email"`
	Phone      *string  `json:"phone" mapstructure:"phone"`
	Skills     []string `json:"skills" mapstructure:"skills"`
	Education  []string `json:"education" mapstructure:"education"`
	Experience []string `json:"experience" mapstructure:"experience"`
}

// Heuristic builds the profile used when no model data is available.
func Heuristic(email, phone *string, skills []string) Profile {
	return Merge(email, phone, skills, nil)
}

// Merge combines heuristic fields with an optional model partial. A model
// value wins when it is present and non-empty. Skills come entirely from one
// source: the model list when non-empty, otherwise the heuristic list.
func Merge(email, phone *string, skills []string, partial *Partial) Profile {
	if partial == nil {
		partial = &Partial{}
	}

	return Profile{
		Name:       pickString(partial.Name, nil),
		Email:      pickString(partial.Email, email),
		Phone:      pickString(partial.Phone, phone),
		Skills:     pickList(partial.Skills, skills),
		Education:  pickList(partial.Education, nil),
		Experience: pickList(partial.Experience, nil),
	}
}

func pickString(preferred, fallback *string) *string {
	if preferred != nil && strings.TrimSpace(*preferred) != "" {
		v := *preferred
		return &v
	}
	if fallback != nil {
		v := *fallback
		return &v
	}
	return nil
}

func pickList(preferred, fallback []string) []string {
	src := fallback
	if len(preferred) > 0 {
		src = preferred
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
