// Package recovery pulls a JSON payload out of free-form model output.
package recovery

import (
	"regexp"
	"strings"
)

const emptyObject = "{}"

// The info string is matched case-insensitively and as a whole word, so
// variants such as JSON, json5 or jsonc are stripped too.
var fencedBlock = regexp.MustCompile("(?s)```(?i:json\\w*)?\\s*(.*?)\\s*```")

// Recover returns the JSON text embedded in raw. Empty input yields "{}", a
// fenced code block yields its trimmed contents, anything else is returned
// trimmed. The result is not validated.
func Recover(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return emptyObject
	}

	if match := fencedBlock.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[1])
	}

	return trimmed
}
