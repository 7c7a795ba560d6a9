package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/PolarWolf314/conson/internal/audit"
	"github.com/PolarWolf314/conson/internal/params"
)

// CreateOptions configures the create workflow.
type CreateOptions struct {
	// Name is the parameter name.
	Name string

	// Values are stored as a scalar when there is one, as a list otherwise.
	Values []string

	// VeilIndexes lists elements to veil right after creation. For a scalar
	// any index veils the value. Repeated indexes are veiled once.
	VeilIndexes []int
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	// Path is the parameter file that was written.
	Path string

	// Name is the created parameter.
	Name string

	// Replaced is true when a parameter of the same name already existed.
	Replaced bool

	// IsList is true when the parameter holds several values.
	IsList bool

	// Veiled lists the veiled element indexes.
	Veiled []int
}

// Create stores a parameter in the parameter file, optionally veiling some
// of its values before anything is written.
//
// Returns ErrNoValues if Values is empty.
// Returns ErrIndexOutOfRange if a veil index does not exist.
// Returns a *params.PersistenceError if the file cannot be read or written.
func Create(ctx context.Context, store *params.Store, opts CreateOptions) (*CreateResult, error) {
	if err := loadIfExists(store); err != nil {
		return nil, err
	}

	_, existed := store.Get(opts.Name)

	if err := store.Create(opts.Name, opts.Values...); err != nil {
		return nil, err
	}

	v, _ := store.Get(opts.Name)
	result := &CreateResult{
		Path:     store.File(),
		Name:     opts.Name,
		Replaced: existed,
		IsList:   v.IsList(),
	}

	for _, index := range opts.VeilIndexes {
		if !v.IsList() && len(result.Veiled) > 0 {
			break
		}
		// Each element is veiled at most once.
		if slices.Contains(result.Veiled, index) {
			continue
		}
		if err := store.Veil(opts.Name, index); err != nil {
			return nil, fmt.Errorf("creating %q: %w", opts.Name, err)
		}
		result.Veiled = append(result.Veiled, index)
	}

	if err := store.Save(); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("create")
	entry.Name = opts.Name
	entry.Count = len(opts.Values)
	entry.File = result.Path
	audit.Log(store.Directory(), entry)

	return result, nil
}
