package recovery

import "testing"

func TestRecover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: "{}"},
		{name: "whitespace", input: "  ", expect: "{}"},
		{name: "tagged fence", input: "```json\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "upper case tag", input: "```JSON\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "json5 tag", input: "```json5\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "jsonc tag", input: "```Jsonc {\"a\":1}```", expect: `{"a":1}`},
		{name: "untagged fence", input: "```\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "plain json", input: `{"a":1}`, expect: `{"a":1}`},
		{name: "plain json is trimmed", input: "\n  {\"a\":1}  \n", expect: `{"a":1}`},
		{
			name:   "fence surrounded by prose",
			input:  "Here is the profile:\n```json\n{\"name\": \"Ada\"}\n```\nLet me know if you need more.",
			expect: `{"name": "Ada"}`,
		},
		{
			name:   "first block wins",
			input:  "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```",
			expect: `{"a":1}`,
		},
		{
			name:   "single line fence",
			input:  "```json {\"a\":1}```",
			expect: `{"a":1}`,
		},
		{
			name:   "unterminated fence is returned as is",
			input:  "```json\n{\"a\":1}",
			expect: "```json\n{\"a\":1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Recover(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
