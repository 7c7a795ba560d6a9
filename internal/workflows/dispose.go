package workflows

import (
	"context"

	"github.com/PolarWolf314/conson/internal/audit"
	"github.com/PolarWolf314/conson/internal/params"
)

// DisposeOptions configures the dispose workflow.
type DisposeOptions struct {
	// Name is the parameter to remove.
	Name string
}

// DisposeResult contains the outcome of a dispose operation.
type DisposeResult struct {
	Path string
	Name string
}

// Dispose removes a parameter from the parameter file.
//
// Returns ErrKeyNotFound if no such parameter exists. The file is not
// rewritten in that case.
func Dispose(ctx context.Context, store *params.Store, opts DisposeOptions) (*DisposeResult, error) {
	if err := loadIfExists(store); err != nil {
		return nil, err
	}

	if err := store.Dispose(opts.Name); err != nil {
		return nil, err
	}

	if err := store.Save(); err != nil {
		return nil, err
	}

	result := &DisposeResult{Path: store.File(), Name: opts.Name}

	entry := audit.LogWithUser("dispose")
	entry.Name = opts.Name
	entry.File = result.Path
	audit.Log(store.Directory(), entry)

	return result, nil
}
