package heuristics

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case insensitive",
			text: "Skills: Python, React.",
			want: []string{"python", "react"},
		},
		{
			name: "repeated mentions are deduplicated",
			text: "Docker docker DOCKER and Kubernetes",
			want: []string{"docker", "kubernetes"},
		},
		{
			name: "substring match finds java inside javascript",
			text: "JavaScript developer",
			want: []string{"java", "javascript"},
		},
		{
			name: "multi word terms",
			text: "Machine Learning with scikit-learn and Data Analysis in pandas",
			want: []string{"data analysis", "machine learning", "pandas", "scikit-learn"},
		},
		{
			name: "nothing found",
			text: "Gardener with ten years of experience",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Skills(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkillsDeterministicAndIdempotent(t *testing.T) {
	text := "Built REST APIs in Node and Express, deployed on AWS with Docker; GitHub Actions CI; SQL + MongoDB."

	first := Skills(text)
	second := Skills(text)
	assert.Equal(t, first, second)
	assert.True(t, sort.StringsAreSorted(first))

	again := Skills(strings.Join(first, " "))
	assert.Equal(t, first, again)
}

func TestEmail(t *testing.T) {
	got := Email("Contact: foo@bar.com. Backup: other@example.org")
	require.NotNil(t, got)
	assert.Equal(t, "foo@bar.com", *got)

	assert.Nil(t, Email("no address here, just @handle and user@host"))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "international", text: "Phone: +1 (555) 123-4567, fax none", want: "+1 (555) 123-4567"},
		{name: "dotted", text: "call 555.123.4567 today", want: "555.123.4567"},
		{name: "first match wins", text: "123456789 and 987654321", want: "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phone(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, Phone("Contact: foo@bar.com. Skills: Python, React."))
	assert.Nil(t, Phone("ext 1234"))
}

func TestExtract(t *testing.T) {
	res := Extract("Contact: foo@bar.com. Skills: Python, React.")

	require.NotNil(t, res.Email)
	assert.Equal(t, "foo@bar.com", *res.Email)
	assert.Nil(t, res.Phone)
	assert.Equal(t, []string{"python", "react"}, res.Skills)
}
