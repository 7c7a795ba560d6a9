package workflows

import (
	"context"

	"github.com/PolarWolf314/conson/internal/audit"
	"github.com/PolarWolf314/conson/internal/params"
)

// VeilOptions configures the veil workflow.
type VeilOptions struct {
	// Name is the parameter to veil.
	Name string

	// Index selects the list element. Ignored for scalars.
	Index int

	// Once refuses to veil a value that already unveils under the current
	// key instead of encrypting it a second time.
	Once bool
}

// VeilResult contains the outcome of a veil operation.
type VeilResult struct {
	Path string
	Name string

	// Index is the veiled element, or -1 for a scalar.
	Index int
}

// Veil encrypts one value of a parameter in the parameter file.
//
// Returns ErrKeyNotFound, ErrIndexOutOfRange, ErrIdentityUnavailable or,
// with Once, ErrAlreadyVeiled. The file is only rewritten on success.
func Veil(ctx context.Context, store *params.Store, opts VeilOptions) (*VeilResult, error) {
	if err := loadIfExists(store); err != nil {
		return nil, err
	}

	veil := store.Veil
	if opts.Once {
		veil = store.VeilOnce
	}
	if err := veil(opts.Name, opts.Index); err != nil {
		return nil, err
	}

	if err := store.Save(); err != nil {
		return nil, err
	}

	result := &VeilResult{Path: store.File(), Name: opts.Name, Index: -1}

	entry := audit.LogWithUser("veil")
	entry.Name = opts.Name
	entry.File = result.Path
	if v, _ := store.Get(opts.Name); v.IsList() {
		result.Index = opts.Index
		entry.Index = &opts.Index
	}
	audit.Log(store.Directory(), entry)

	return result, nil
}
