package utils

import (
	"strings"

	"github.com/PolarWolf314/conson/internal/ui"
)

// FormatNames formats a slice of parameter names into a readable list.
func FormatNames(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Highlight.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}

// Abbreviate shortens s to at most n characters, keeping the start and the
// end. Used to display long tokens.
func Abbreviate(s string, n int) string {
	if n < 5 || len(s) <= n {
		return s
	}
	keep := (n - 3) / 2
	return s[:keep] + "..." + s[len(s)-keep:]
}
