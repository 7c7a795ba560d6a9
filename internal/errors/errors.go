package errors

import "errors"

// Identity errors indicate the host machine identifier could not be obtained.
var (
	// ErrIdentityUnavailable indicates the machine UUID tool is missing, failed, or printed unusable output.
	ErrIdentityUnavailable = errors.New("machine identity unavailable")
)

// Cryptographic errors indicate failures during key derivation, encryption or decryption.
var (
	// ErrInvalidSalt indicates the salt cannot be converted into key derivation bytes.
	ErrInvalidSalt = errors.New("invalid salt")

	// ErrInvalidKeyLength indicates the derived key material does not decode to 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key material length")

	// ErrEncryptFailed indicates a value could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt value")

	// ErrDecryptionFailed indicates a token is malformed or was encrypted under a different key.
	ErrDecryptionFailed = errors.New("failed to decrypt value")
)

// Parameter errors indicate an operation was requested on a missing or unsuitable parameter.
var (
	// ErrKeyNotFound indicates no parameter exists with the given name.
	ErrKeyNotFound = errors.New("parameter not found")

	// ErrIndexOutOfRange indicates a list index outside the parameter's values.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoValues indicates a parameter was created without any value.
	ErrNoValues = errors.New("parameter needs at least one value")

	// ErrAlreadyVeiled indicates the value already decrypts under the current key.
	ErrAlreadyVeiled = errors.New("value is already veiled")

	// ErrInvalidPattern indicates a parameter name pattern is not a valid glob.
	ErrInvalidPattern = errors.New("invalid name pattern")
)

// Persistence errors indicate the parameter file could not be read or written.
var (
	// ErrPersistence indicates the parameter file is unreadable, unwritable or not a JSON object.
	ErrPersistence = errors.New("parameter file error")

	// ErrNoFilesFound indicates an expected file does not exist.
	ErrNoFilesFound = errors.New("no matching files found")
)

// Input errors indicate invalid user input.
var (
	// ErrInvalidDateFormat indicates a date argument is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrEmptySalt indicates an empty salt was given.
	ErrEmptySalt = errors.New("salt must not be empty")

	// ErrDirectoryNotFound indicates a configured directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
)
