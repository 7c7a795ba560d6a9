package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the per-user defaults file, config.toml in the user config
// directory. Command-line flags override it.
type UserConfig struct {
	Store Settings `toml:"store"`
}

// UserConfigPath returns the location of the user config file.
func UserConfigPath() string {
	return filepath.Join(UserConsonSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration. A missing file yields the
// default settings.
func LoadUserConfig() (*UserConfig, error) {
	config := &UserConfig{Store: DefaultSettings()}

	configPath := UserConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	var loaded UserConfig
	if err := LoadTOML(configPath, &loaded); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	config.Store = config.Store.Merge(loaded.Store)

	return config, nil
}

// SaveUserConfig saves the user configuration.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// UserConfigExists reports whether the user config file has been written.
func UserConfigExists() bool {
	_, err := os.Stat(UserConfigPath())
	return err == nil
}
