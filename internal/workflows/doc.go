// Package workflows provides high-level orchestration for conson commands.
//
// Workflows coordinate the parameter store, the parameter file and the
// audit log to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Available Workflows
//
//   - Save, Load: persist the store, optionally recovering from failures
//   - Create, Dispose: add or remove a parameter in the parameter file
//   - Veil, Unveil: encrypt a stored value, decrypt a token
//   - Show: list parameters matching glob patterns
//   - Doctor: check identity, salt and parameter file health
//   - Log: read and filter the audit log
//
// Create, Dispose, Veil and Show first load the parameter file. A missing
// file counts as an empty store.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Veil(ctx, store, opts)
//	if errors.Is(err, kerrors.ErrIndexOutOfRange) {
//	    // Show the number of values
//	}
//
// Save and Load with Recover set never return an error. The failure is
// reported in the result and logged instead.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
