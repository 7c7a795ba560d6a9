package configs

import (
	"os"
	"path/filepath"

	"github.com/PolarWolf314/conson/internal/params"
	"github.com/PolarWolf314/conson/internal/utils"
)

// Settings locate the parameter file and hold the veiling salt.
type Settings struct {
	FileName  string `toml:"file_name"`
	Directory string `toml:"directory,omitempty"`
	Salt      string `toml:"salt"`
}

type UserSettings struct {
	UserConfigsPath string
	Username        string
}

var UserConsonSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.TempDir(), "conson-config")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	UserConsonSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "conson"),
		Username:        username,
	}
}

// DefaultSettings returns config.json in the working directory with the
// built-in salt.
func DefaultSettings() Settings {
	return Settings{
		FileName: params.DefaultFileName,
		Salt:     params.DefaultSalt,
	}
}

// Merge returns s with every non-empty field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	if o.FileName != "" {
		s.FileName = o.FileName
	}
	if o.Directory != "" {
		s.Directory = o.Directory
	}
	if o.Salt != "" {
		s.Salt = o.Salt
	}
	return s
}

// ResolvedDirectory returns the directory with ~ and environment variables
// expanded. Empty means the working directory.
func (s Settings) ResolvedDirectory() (string, error) {
	if s.Directory == "" {
		return os.Getwd()
	}
	return utils.ExpandPath(s.Directory)
}

// Path returns the full parameter file path.
func (s Settings) Path() (string, error) {
	dir, err := s.ResolvedDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, s.FileName), nil
}

// UsesDefaultSalt reports whether the built-in salt is in effect.
func (s Settings) UsesDefaultSalt() bool {
	return s.Salt == "" || s.Salt == params.DefaultSalt
}

// StoreOptions converts the settings into parameter store options.
func (s Settings) StoreOptions() ([]params.Option, error) {
	dir, err := s.ResolvedDirectory()
	if err != nil {
		return nil, err
	}
	opts := []params.Option{params.WithDirectory(dir)}
	if s.FileName != "" {
		opts = append(opts, params.WithFileName(s.FileName))
	}
	if s.Salt != "" {
		opts = append(opts, params.WithSalt(s.Salt))
	}
	return opts, nil
}
