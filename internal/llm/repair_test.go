package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"fence after prose", "Here is the result:\n```json\n{\"a\": 1}\n```\nThanks", `{"a": 1}`},
		{"inline fence", "```{\"a\": 1}```", `{"a": 1}`},
		{"plain JSON", `  {"key": "value"}  `, `{"key": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"valid object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": [1, 2]}\n```", `{"a": [1, 2]}`},
		{"preamble", "Sure! Here is the parsed resume: {\"name\": \"Jane\"}", `{"name": "Jane"}`},
		{"trailing prose", "{\"a\": 1}\n\nLet me know if you need anything else!", `{"a": 1}`},
		{"braces inside strings", `{"t": "Hello {name}!"}`, `{"t": "Hello {name}!"}`},
		{"escaped quotes", `{"m": "He said \"hi\""} done`, `{"m": "He said \"hi\""}`},
		{"trailing commas", `{"a": [1, 2,], "b": {"c": 1,},}`, `{"a": [1, 2], "b": {"c": 1}}`},
		{"comma inside string kept", `{"a": "x,}"}`, `{"a": "x,}"}`},
		{"truncated inside string", `{"summary": "Backend engin`, `{"summary": "Backend engin"}`},
		{"truncated after comma", `{"skills": {"languages": ["go", "rust",`, `{"skills": {"languages": ["go", "rust"]}}`},
		{"truncated after colon", `{"summary": "x", "experience":`, `{"summary": "x", "experience":null}`},
		{"truncated after escape", `{"a": "line\`, `{"a": "line"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepairJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestRepairJSON_Unrecoverable(t *testing.T) {
	for _, input := range []string{
		"",
		"I could not parse this resume.",
		`{"a": tru`,
		`{"a" "b"}`,
	} {
		_, err := RepairJSON(input)
		require.Error(t, err, input)
		var repairErr *RepairError
		assert.True(t, errors.As(err, &repairErr), input)
	}
}
