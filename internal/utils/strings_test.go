package utils

import (
	"strings"
	"testing"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"Short", "abc", 10, "abc"},
		{"Exact", "abcdefghij", 10, "abcdefghij"},
		{"Long", "abcdefghijklmnop", 9, "abc...nop"},
		{"TinyLimit", "abcdefghijklmnop", 3, "abcdefghijklmnop"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Abbreviate(tc.input, tc.n); got != tc.expected {
				t.Errorf("Abbreviate(%q, %d) = %q, expected %q", tc.input, tc.n, got, tc.expected)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := FormatNames([]string{"db", "pc1"})
	if !strings.Contains(out, "- 'db'") || !strings.Contains(out, "- 'pc1'") {
		t.Errorf("Unexpected output %q", out)
	}
}
