package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/PolarWolf314/conson/internal/params"
	"github.com/PolarWolf314/conson/internal/secrets"
	"github.com/PolarWolf314/conson/internal/utils"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// DefaultSalt is true when the salt was not chosen by the user.
	DefaultSalt bool
}

// Doctor runs health checks against the store's machine identity, salt and
// parameter file.
//
// The doctor workflow checks:
//   - The machine UUID can be read
//   - A key can be derived from it and the salt
//   - A value survives a veil and unveil round trip
//   - The salt is not the built-in one
//   - The parameter file is a JSON object with private permissions
//   - Veiled values in the file unveil on this machine
func Doctor(ctx context.Context, store *params.Store, opts DoctorOptions) (*DoctorResult, error) {
	checks := []func() CheckResult{
		func() CheckResult { return checkIdentity(store) },
		func() CheckResult { return checkKeyDerivation(store) },
		func() CheckResult { return checkRoundTrip(store) },
		func() CheckResult { return checkSalt(store, opts.DefaultSalt) },
		func() CheckResult { return checkParameterFile(store) },
		func() CheckResult { return checkFilePermissions(store) },
		func() CheckResult { return checkVeiledValues(store) },
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check())
	}

	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}

func checkIdentity(store *params.Store) CheckResult {
	result := CheckResult{Name: "Machine identity"}

	c := store.Cipher()
	if _, err := c.Identity.MachineUUID(); err != nil {
		result.Status = CheckError
		result.Message = err.Error()
		if !utils.IsElevated() && runtime.GOOS != "windows" {
			result.Suggestion = "Run conson as root so dmidecode can read the system UUID"
		} else {
			result.Suggestion = "Make sure the machine UUID tool is installed and on PATH"
		}
		return result
	}

	result.Status = CheckPass
	result.Message = fmt.Sprintf("Machine UUID read via %v", c.Identity)
	return result
}

func checkKeyDerivation(store *params.Store) CheckResult {
	result := CheckResult{Name: "Key derivation"}

	if _, err := store.Cipher().Key(); err != nil {
		result.Status = CheckError
		result.Message = err.Error()
		result.Suggestion = "Choose a salt of plain ASCII characters"
		return result
	}

	result.Status = CheckPass
	result.Message = "Key derived from machine UUID and salt"
	return result
}

func checkRoundTrip(store *params.Store) CheckResult {
	const probe = "conson doctor probe"
	result := CheckResult{Name: "Veil round trip"}

	c := store.Cipher()
	token, err := c.Veil(probe)
	if err == nil {
		var plain string
		plain, err = c.Unveil(token)
		if err == nil && plain != probe {
			err = fmt.Errorf("unveiled %q, expected %q", plain, probe)
		}
	}
	if err != nil {
		result.Status = CheckError
		result.Message = err.Error()
		return result
	}

	result.Status = CheckPass
	result.Message = "Values veil and unveil on this machine"
	return result
}

func checkSalt(store *params.Store, defaultSalt bool) CheckResult {
	result := CheckResult{Name: "Salt"}

	if defaultSalt || store.Salt() == params.DefaultSalt {
		result.Status = CheckWarning
		result.Message = "Built-in salt in use; anyone with access to this machine can unveil values"
		result.Suggestion = "Set a salt of your own with: conson config set-salt"
		return result
	}

	result.Status = CheckPass
	result.Message = "Custom salt configured"
	return result
}

func checkParameterFile(store *params.Store) CheckResult {
	result := CheckResult{Name: "Parameter file"}
	path := store.File()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%s does not exist yet", path)
		result.Suggestion = "Create a parameter with: conson params create NAME VALUE"
		return result
	}

	if !store.Check() {
		result.Status = CheckError
		result.Message = fmt.Sprintf("%s is not a JSON object", path)
		result.Suggestion = "Fix or remove the parameter file"
		return result
	}

	probe := params.New(params.WithFileName(store.FileName()), params.WithDirectory(store.Directory()))
	if err := probe.Load(); err != nil {
		result.Status = CheckError
		result.Message = err.Error()
		result.Suggestion = "Values must be strings or arrays of strings"
		return result
	}

	result.Status = CheckPass
	result.Message = fmt.Sprintf("%s holds %d parameters", path, probe.Len())
	return result
}

func checkFilePermissions(store *params.Store) CheckResult {
	result := CheckResult{Name: "File permissions"}

	info, err := os.Stat(store.File())
	if err != nil {
		result.Status = CheckPass
		result.Message = "No parameter file to check"
		return result
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("Parameter file is accessible by others (%04o)", info.Mode().Perm())
		result.Suggestion = fmt.Sprintf("Restrict the parameter file with: chmod 600 %s", store.File())
		return result
	}

	result.Status = CheckPass
	result.Message = "Parameter file is private"
	return result
}

func checkVeiledValues(store *params.Store) CheckResult {
	result := CheckResult{Name: "Veiled values"}

	probe := params.New(
		params.WithFileName(store.FileName()),
		params.WithDirectory(store.Directory()),
	)
	if err := probe.Load(); err != nil {
		result.Status = CheckPass
		result.Message = "No veiled values to check"
		return result
	}

	c := store.Cipher()
	var total, broken int
	for _, name := range probe.Names() {
		v, _ := probe.Get(name)
		items := v.Items()
		if !v.IsList() {
			items = []string{v.String()}
		}
		for _, item := range items {
			if !secrets.IsToken(item) {
				continue
			}
			total++
			if _, err := c.Unveil(item); err != nil {
				broken++
			}
		}
	}

	if broken > 0 {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%d of %d veiled values cannot be unveiled here", broken, total)
		result.Suggestion = "Values veiled on another machine or with another salt must be veiled again"
		return result
	}

	result.Status = CheckPass
	result.Message = fmt.Sprintf("%d veiled values unveil correctly", total)
	return result
}
