package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI output, in color or as decorated plain text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Formatters used by the params and config commands. Without color each one
// falls back to its plain-text decoration.
var (
	// Code wraps a command the user can run next, such as conson params show.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path marks the parameter file, the audit log and config.toml.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag marks a flag named in a hint, such as --once.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success prefixes a completed create, veil, save or config change.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error prefixes a failed operation.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning flags the built-in salt and loose file permissions.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight quotes parameter names.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Token shows a veiled value still in its hex form.
	Token = Formatter{color.New(color.FgMagenta), "<", ">"}

	// Muted annotates a value, as in (unveiled).
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
