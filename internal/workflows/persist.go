package workflows

import (
	"context"
	"errors"
	"io/fs"

	"github.com/PolarWolf314/conson/internal/audit"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/PolarWolf314/conson/internal/params"
)

// SaveOptions configures the save workflow.
type SaveOptions struct {
	// Recover captures a persistence failure in the result instead of
	// returning it. A status line is logged either way.
	Recover bool

	// Logger receives the status line.
	Logger logger.Logger
}

// SaveResult contains the outcome of a save operation.
type SaveResult struct {
	// Path is the parameter file that was written.
	Path string

	// Parameters is the number of parameters in the store.
	Parameters int

	// Err is the recovered failure when SaveOptions.Recover is set.
	Err error
}

// OK reports whether the file was written.
func (r *SaveResult) OK() bool {
	return r.Err == nil
}

// Save writes the store to its parameter file.
//
// Without Recover, a failure is returned as a *params.PersistenceError.
// With Recover, Save never returns an error; the failure is in the result.
func Save(ctx context.Context, store *params.Store, opts SaveOptions) (*SaveResult, error) {
	result := &SaveResult{
		Path:       store.File(),
		Parameters: store.Len(),
	}

	if err := store.Save(); err != nil {
		opts.Logger.WarnfAlways("Parameters could not be saved to %s: %v", result.Path, err)
		if !opts.Recover {
			return nil, err
		}
		result.Err = err
		return result, nil
	}

	opts.Logger.Infof("Parameters saved to %s", result.Path)

	entry := audit.LogWithUser("save")
	entry.Count = result.Parameters
	entry.File = result.Path
	audit.Log(store.Directory(), entry)

	return result, nil
}

// LoadOptions configures the load workflow.
type LoadOptions struct {
	// Recover captures a persistence failure in the result instead of
	// returning it. A status line is logged either way.
	Recover bool

	// Logger receives the status line.
	Logger logger.Logger
}

// LoadResult contains the outcome of a load operation.
type LoadResult struct {
	// Path is the parameter file that was read.
	Path string

	// Parameters is the number of parameters in the store after loading.
	Parameters int

	// Err is the recovered failure when LoadOptions.Recover is set.
	Err error
}

// OK reports whether the file was read and merged.
func (r *LoadResult) OK() bool {
	return r.Err == nil
}

// Load merges the parameter file into the store. On failure the store is
// left as it was.
//
// Without Recover, a failure is returned as a *params.PersistenceError.
// With Recover, Load never returns an error; the failure is in the result.
func Load(ctx context.Context, store *params.Store, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Path: store.File()}

	if err := store.Load(); err != nil {
		opts.Logger.WarnfAlways("Parameters could not be loaded from %s: %v", result.Path, err)
		result.Parameters = store.Len()
		if !opts.Recover {
			return nil, err
		}
		result.Err = err
		return result, nil
	}

	result.Parameters = store.Len()
	opts.Logger.Infof("Parameters loaded from %s", result.Path)

	entry := audit.LogWithUser("load")
	entry.Count = result.Parameters
	entry.File = result.Path
	audit.Log(store.Directory(), entry)

	return result, nil
}

// loadIfExists loads the parameter file, treating a missing file as an
// empty store.
func loadIfExists(store *params.Store) error {
	if err := store.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
