package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/params"
	"github.com/PolarWolf314/conson/internal/secrets"
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Patterns are glob patterns matched against parameter names, for
	// example "db_*" or "{host,port}". Empty shows every parameter.
	Patterns []string

	// Unveil decrypts values that look like tokens. Values that fail to
	// decrypt are shown as stored.
	Unveil bool
}

// ShownParameter is a parameter as displayed.
type ShownParameter struct {
	Name  string
	Value params.Value

	// Veiled lists element indexes that still hold a token.
	Veiled []int

	// Unveiled lists element indexes that were decrypted for display.
	Unveiled []int
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	// Path is the parameter file that was read.
	Path string

	// Exists is false when the parameter file does not exist yet.
	Exists bool

	// Parameters are the matching parameters in file order.
	Parameters []ShownParameter

	// Total is the number of parameters before filtering.
	Total int
}

// Show reads the parameter file and returns the parameters whose names
// match any of the patterns. The file is never modified.
//
// Returns ErrInvalidPattern if a pattern is not a valid glob.
func Show(ctx context.Context, store *params.Store, opts ShowOptions) (*ShowResult, error) {
	for _, pattern := range opts.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidPattern, pattern)
		}
	}

	if err := loadIfExists(store); err != nil {
		return nil, err
	}

	result := &ShowResult{
		Path:   store.File(),
		Exists: store.Check(),
		Total:  store.Len(),
	}

	cipher := store.Cipher()
	for _, name := range store.Names() {
		if !matchesAny(name, opts.Patterns) {
			continue
		}

		v, _ := store.Get(name)
		shown := ShownParameter{Name: name}

		items := v.Items()
		if !v.IsList() {
			items = []string{v.String()}
		}
		for i, item := range items {
			if !secrets.IsToken(item) {
				continue
			}
			if opts.Unveil {
				if plain, err := cipher.Unveil(item); err == nil {
					items[i] = plain
					shown.Unveiled = append(shown.Unveiled, i)
					continue
				}
			}
			shown.Veiled = append(shown.Veiled, i)
		}

		if v.IsList() {
			shown.Value = params.List(items...)
		} else {
			shown.Value = params.Scalar(items[0])
		}
		result.Parameters = append(result.Parameters, shown)
	}

	return result, nil
}

func matchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
