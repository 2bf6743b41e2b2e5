// Package heuristics extracts profile fields from resume text without calling
// any external service.
package heuristics

import (
	"regexp"
	"sort"
	"strings"
)

// Vocabulary is the fixed list of skill terms recognised by Skills.
// Terms are lowercase and matched as substrings of the lowercased text.
var Vocabulary = []string{
	"python", "javascript", "typescript", "react", "node", "java", "c++",
	"sql", "mongodb", "aws", "azure", "gcp", "docker", "kubernetes",
	"data analysis", "machine learning", "nlp", "pandas", "numpy",
	"flask", "django", "fastapi", "vue", "angular", "express",
	"pytorch", "tensorflow", "scikit-learn", "git", "github",
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
)

// Result groups the fields found by the heuristic pass.
type Result struct {
	Email  *string
	Phone  *string
	Skills []string
}

// Extract runs every heuristic over text.
func Extract(text string) Result {
	return Result{
		Email:  Email(text),
		Phone:  Phone(text),
		Skills: Skills(text),
	}
}

// Skills returns the vocabulary terms that occur in text, sorted and without
// duplicates. The result is never nil.
func Skills(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]struct{}, len(Vocabulary))
	found := make([]string, 0)
	for _, term := range Vocabulary {
		if _, ok := seen[term]; ok {
			continue
		}
		if strings.Contains(lower, term) {
			seen[term] = struct{}{}
			found = append(found, term)
		}
	}

	sort.Strings(found)
	return found
}

// Email returns the first email-shaped substring of text or nil.
func Email(text string) *string {
	return firstMatch(emailRe, text)
}

// Phone returns the first phone-shaped substring of text or nil.
func Phone(text string) *string {
	return firstMatch(phoneRe, text)
}

func firstMatch(re *regexp.Regexp, text string) *string {
	match := re.FindString(text)
	if match == "" {
		return nil
	}
	return &match
}
