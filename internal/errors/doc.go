// Package errors provides typed error values for conson.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Identity errors: the machine UUID cannot be read (ErrIdentityUnavailable)
//   - Crypto errors: key derivation and token failures (ErrInvalidSalt, ErrDecryptionFailed)
//   - Parameter errors: missing names or bad indexes (ErrKeyNotFound, ErrIndexOutOfRange)
//   - Persistence errors: unreadable or malformed parameter files (ErrPersistence)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("veiling %q: %w", name, errors.ErrKeyNotFound)
//
// Handle them in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrIdentityUnavailable) {
//	    // Suggest running with elevated privileges
//	}
package errors
