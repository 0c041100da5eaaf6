package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hal9000y/gapps-mcp/internal/format"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "curly quotes straightened",
			input:    "token is “abc-123”",
			expected: `token is "abc-123"`,
		},
		{
			name:     "crlf collapsed to space",
			input:    "line one\r\nline two",
			expected: "line one line two",
		},
		{
			name:     "bare lf untouched",
			input:    "line one\nline two",
			expected: "line one\nline two",
		},
		{
			name:     "mixed",
			input:    "status: “done”\r\nnext: “pending”",
			expected: `status: "done" next: "pending"`,
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, format.Normalize(tc.input))
		})
	}
}
