package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/conson/internal/audit"
	"github.com/PolarWolf314/conson/internal/params"
)

// UnveilOptions configures the unveil workflow.
type UnveilOptions struct {
	// Token is the hex token. Surrounding whitespace is ignored.
	Token string
}

// UnveilResult contains the outcome of an unveil operation.
type UnveilResult struct {
	Value string
}

// Unveil decrypts a token with this machine's identity and the store's salt.
// The parameter file is not read.
//
// Returns ErrDecryptionFailed if the token was veiled on another machine,
// with another salt, or is not a token at all.
func Unveil(ctx context.Context, store *params.Store, opts UnveilOptions) (*UnveilResult, error) {
	value, err := store.Unveil(strings.TrimSpace(opts.Token))
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("unveil")
	entry.File = store.File()
	audit.Log(store.Directory(), entry)

	return &UnveilResult{Value: value}, nil
}
