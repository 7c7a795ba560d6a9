// Package secrets derives machine-bound keys and encrypts parameter values.
//
// # Key Derivation
//
// DeriveKey combines the machine UUID from an identity.Provider with the MD5
// digest of the user salt into a 44 character Fernet key string. The
// splicing layout is fixed: values veiled by earlier releases must keep
// decrypting on the same machine. The key is derived again for every
// operation and is never persisted.
//
// # Value Encryption
//
// Values are sealed as Fernet tokens (AES-128-CBC with HMAC-SHA256, a
// version byte and a timestamp, base64url encoded) and then hex encoded so
// they can sit in a JSON string without escaping:
//
//	key, _ := secrets.DeriveKey(salt, identity.Default())
//	token, _ := secrets.Encrypt("password", key)
//	plain, _ := secrets.Decrypt(token, key)
//
// A token produced on another machine, or with another salt, fails with
// ErrDecryptionFailed.
//
// # Security Considerations
//
// The key is only as secret as the machine UUID and the salt. Anyone who can
// read the UUID (often root only) and knows the salt can decrypt. This
// binds values to a host; it is not protection against a local attacker.
package secrets
