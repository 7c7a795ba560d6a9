package params

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/identity"
	logger "github.com/PolarWolf314/conson/internal/logging"
	"github.com/PolarWolf314/conson/internal/secrets"
)

const (
	// DefaultFileName is the parameter file name used when none is given.
	DefaultFileName = "config.json"

	// DefaultSalt is the built-in salt. Values veiled with it are bound to the
	// machine only; set a salt of your own.
	DefaultSalt = "ch4ng3M3pl3453"
)

// Store is an ordered set of named parameters together with the file it is
// persisted to and the salt used to veil values.
//
// A Store is not safe for concurrent use.
type Store struct {
	fileName  string
	directory string
	salt      string
	identity  identity.Provider
	log       logger.Logger

	names  []string
	values map[string]Value
}

// Option configures a Store.
type Option func(*Store)

// WithFileName sets the parameter file name.
func WithFileName(name string) Option {
	return func(s *Store) { s.fileName = name }
}

// WithDirectory sets the directory holding the parameter file.
func WithDirectory(dir string) Option {
	return func(s *Store) { s.directory = dir }
}

// WithSalt sets the salt mixed into the veiling key.
func WithSalt(salt string) Option {
	return func(s *Store) { s.salt = salt }
}

// WithIdentity replaces the platform machine identity provider.
func WithIdentity(p identity.Provider) Option {
	return func(s *Store) { s.identity = p }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns an empty store. Without options it uses config.json in the
// working directory, the built-in salt and the platform identity provider.
func New(opts ...Option) *Store {
	s := &Store{
		fileName: DefaultFileName,
		salt:     DefaultSalt,
		identity: identity.Default(),
		values:   make(map[string]Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.directory == "" {
		s.directory = workingDir()
	}
	return s
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// File returns the full path of the parameter file.
func (s *Store) File() string {
	return filepath.Join(s.directory, s.fileName)
}

// SetFile changes the parameter file. An empty directory means the current
// working directory.
func (s *Store) SetFile(fileName, directory string) {
	if directory == "" {
		directory = workingDir()
	}
	s.fileName = fileName
	s.directory = directory
}

// FileName returns the parameter file name without its directory.
func (s *Store) FileName() string {
	return s.fileName
}

// Directory returns the directory holding the parameter file.
func (s *Store) Directory() string {
	return s.directory
}

// Salt returns the salt used for veiling.
func (s *Store) Salt() string {
	return s.salt
}

// SetSalt changes the salt. Values veiled under the old salt can no longer
// be unveiled.
func (s *Store) SetSalt(salt string) {
	s.salt = salt
}

// Cipher returns the cipher bound to this store's identity and salt.
func (s *Store) Cipher() secrets.Cipher {
	return secrets.Cipher{Identity: s.identity, Salt: s.salt}
}

// Create stores a parameter. A single value is stored as a scalar, several
// values as a list in the given order. An existing parameter of the same
// name is replaced.
func (s *Store) Create(name string, values ...string) error {
	switch len(values) {
	case 0:
		return fmt.Errorf("creating %q: %w", name, kerrors.ErrNoValues)
	case 1:
		s.set(name, Scalar(values[0]))
	default:
		s.set(name, List(values...))
	}
	s.log.Debugf("Created parameter %q with %d value(s)", name, len(values))
	return nil
}

// Set stores v under name, replacing any existing value.
func (s *Store) Set(name string, v Value) {
	s.set(name, v)
}

func (s *Store) set(name string, v Value) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Dispose removes a parameter.
func (s *Store) Dispose(name string) error {
	if _, ok := s.values[name]; !ok {
		return fmt.Errorf("disposing %q: %w", name, kerrors.ErrKeyNotFound)
	}
	delete(s.values, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	s.log.Debugf("Disposed parameter %q", name)
	return nil
}

// Get returns the value stored under name.
func (s *Store) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	if !ok {
		return Value{}, false
	}
	if v.isList {
		v = List(v.list...)
	}
	return v, true
}

// Names returns the parameter names in insertion order.
func (s *Store) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of parameters.
func (s *Store) Len() int {
	return len(s.names)
}

// Snapshot returns a copy of every parameter. Store configuration such as
// the file path and salt is not included.
func (s *Store) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for _, name := range s.names {
		v, _ := s.Get(name)
		out[name] = v
	}
	return out
}

// Veil replaces a value with its ciphertext. For a list the element at index
// is replaced and the list keeps its order and length. For a scalar the
// whole value is replaced and index is ignored.
//
// Veil does not know whether the target is already ciphertext. Veiling the
// same element twice encrypts the ciphertext again, and it must then be
// unveiled twice. Use VeilOnce to refuse that.
func (s *Store) Veil(name string, index int) error {
	return s.veil(name, index, false)
}

// VeilOnce is Veil but fails with ErrAlreadyVeiled when the target already
// unveils under the current key.
func (s *Store) VeilOnce(name string, index int) error {
	return s.veil(name, index, true)
}

func (s *Store) veil(name string, index int, once bool) error {
	v, ok := s.values[name]
	if !ok {
		return fmt.Errorf("veiling %q: %w", name, kerrors.ErrKeyNotFound)
	}

	target := v.scalar
	if v.isList {
		if index < 0 || index >= len(v.list) {
			return fmt.Errorf("veiling %q[%d] of %d values: %w", name, index, len(v.list), kerrors.ErrIndexOutOfRange)
		}
		target = v.list[index]
	}

	c := s.Cipher()
	if once && secrets.IsToken(target) {
		if _, err := c.Unveil(target); err == nil {
			return fmt.Errorf("veiling %q: %w", name, kerrors.ErrAlreadyVeiled)
		}
	}

	token, err := c.Veil(target)
	if err != nil {
		return fmt.Errorf("veiling %q: %w", name, err)
	}

	if v.isList {
		items := slices.Clone(v.list)
		items[index] = token
		s.values[name] = List(items...)
		s.log.Debugf("Veiled parameter %q at index %d", name, index)
	} else {
		s.values[name] = Scalar(token)
		s.log.Debugf("Veiled parameter %q", name)
	}
	return nil
}

// Unveil decrypts a token veiled on this machine with this store's salt. It
// is not tied to any stored parameter.
func (s *Store) Unveil(hexToken string) (string, error) {
	return s.Cipher().Unveil(hexToken)
}
