package stringutils_test

import (
	"testing"

	"github.com/habiliai/agenteval/internal/stringutils"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "null byte",
			input:    "LangGraph\u0000 v0.3",
			expected: "LangGraph v0.3",
		},
		{
			name:     "mixed control characters",
			input:    "crew\u0001\u001f\u007fai",
			expected: "crewai",
		},
		{
			name:     "whitespace survives",
			input:    "release\tnotes\nline\r",
			expected: "release\tnotes\nline\r",
		},
		{
			name:     "C1 control characters",
			input:    "agent\u0080\u009fkit",
			expected: "agentkit",
		},
		{
			name:     "invalid utf8",
			input:    "ok\xffok",
			expected: "okok",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stringutils.Clean(tc.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", stringutils.Truncate("abc", 3))
	assert.Equal(t, "ab...", stringutils.Truncate("abc", 2))
	assert.Equal(t, "한국...", stringutils.Truncate("한국어", 2))
	assert.Equal(t, "", stringutils.Truncate("abc", 0))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", stringutils.CollapseSpace("  a\n\tb   c "))
}
