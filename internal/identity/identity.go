package identity

import (
	"encoding/hex"
	"fmt"
	"os/exec"
	"strings"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
)

// UUIDLength is the length of a normalized machine UUID.
const UUIDLength = 32

// OutputLine is the index of the line holding the UUID in the tool output.
// Both wmic and dmidecode are read from the third line; keys derived on
// existing hosts depend on this rule staying fixed.
const OutputLine = 2

// Provider returns the hardware UUID of the current machine.
type Provider interface {
	MachineUUID() (string, error)
}

// CommandProvider reads the machine UUID from the output of an OS tool.
type CommandProvider struct {
	Name string
	Args []string
	Line int
}

var _ Provider = CommandProvider{}

// MachineUUID runs the tool and parses its output.
func (p CommandProvider) MachineUUID() (string, error) {
	// #nosec G204 -- the command is fixed per platform, never user supplied.
	out, err := exec.Command(p.Name, p.Args...).Output()
	if err != nil {
		return "", fmt.Errorf("%w: running %s: %v", kerrors.ErrIdentityUnavailable, p.Name, err)
	}
	return ParseOutput(string(out), p.Line)
}

// String returns the command line for display purposes.
func (p CommandProvider) String() string {
	return strings.Join(append([]string{p.Name}, p.Args...), " ")
}

// ParseOutput extracts the UUID from raw tool output. The output is trimmed,
// split into lines the way wmic emits them (\r\r\n yields an empty line) and
// the requested line is returned without whitespace or hyphens.
func ParseOutput(raw string, line int) (string, error) {
	lines := splitLines(strings.TrimSpace(raw))
	if line < 0 || line >= len(lines) {
		return "", fmt.Errorf("%w: expected at least %d lines of output, got %d",
			kerrors.ErrIdentityUnavailable, line+1, len(lines))
	}
	return normalize(lines[line])
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func normalize(id string) (string, error) {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(id) != UUIDLength {
		return "", fmt.Errorf("%w: machine uuid %q has %d characters, want %d",
			kerrors.ErrIdentityUnavailable, id, len(id), UUIDLength)
	}
	if _, err := hex.DecodeString(id); err != nil {
		return "", fmt.Errorf("%w: machine uuid %q is not hexadecimal", kerrors.ErrIdentityUnavailable, id)
	}
	return id, nil
}

type static struct {
	id  string
	err error
}

// Static returns a Provider that always reports the given UUID. Hyphens are
// accepted and removed. An invalid UUID makes every call fail with
// ErrIdentityUnavailable.
func Static(uuid string) Provider {
	id, err := normalize(uuid)
	return static{id: id, err: err}
}

func (s static) MachineUUID() (string, error) {
	return s.id, s.err
}

func (s static) String() string {
	return "fixed identity"
}

// Unavailable returns a Provider that always fails with ErrIdentityUnavailable.
func Unavailable(reason string) Provider {
	return static{err: fmt.Errorf("%w: %s", kerrors.ErrIdentityUnavailable, reason)}
}
