package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/conson/internal/configs"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/params"
)

func TestConfigInit(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init", "--file", "app.json")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "User configuration written") {
		t.Errorf("Expected success message, got %q", output)
	}

	config, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Store.FileName != "app.json" {
		t.Errorf("Expected app.json, got %q", config.Store.FileName)
	}
	if config.Store.UsesDefaultSalt() {
		t.Error("Expected a generated salt")
	}

	output, err = runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected already exists message, got %q", output)
	}
}

func TestConfigInitMissingDirectory(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t)
	missing := filepath.Join(t.TempDir(), "missing")

	output, err := runCLI(t, "config", "init", "--dir", missing)
	if !errors.Is(err, kerrors.ErrDirectoryNotFound) {
		t.Fatalf("Expected ErrDirectoryNotFound, got %v", err)
	}
	if !strings.Contains(output, "does not exist") {
		t.Errorf("Expected missing directory message, got %q", output)
	}
	if configs.UserConfigExists() {
		t.Error("Expected no config file to be written")
	}

	if _, err := runCLI(t, "config", "init", "--dir", t.TempDir()); err != nil {
		t.Errorf("Expected an existing directory to be accepted, got %v", err)
	}
}

func TestConfigDefaultsApplyToParams(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	wd := setupTestEnvironment(t)

	if _, err := runCLI(t, "config", "init", "--file", "app.json", "--salt", "pepper"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := runCLI(t, "params", "create", "pw", "x", "--veil", "0"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	s := readParams(t, wd, "app.json", "pepper")
	v, _ := s.Get("pw")
	if plain, err := s.Unveil(v.String()); err != nil || plain != "x" {
		t.Errorf("Expected value veiled with the configured salt, got %q, %v", plain, err)
	}
}

func TestConfigShow(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	wd := setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var shown configShowOutput
	if err := json.Unmarshal([]byte(output), &shown); err != nil {
		t.Fatalf("Expected JSON output: %v\n%s", err, output)
	}
	if shown.Exists || !shown.DefaultSalt || shown.FileName != params.DefaultFileName || shown.Directory != wd {
		t.Errorf("Unexpected defaults %+v", shown)
	}

	output, err = runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "built-in") || strings.Contains(output, params.DefaultSalt) {
		t.Errorf("Expected built-in salt notice without the salt, got %q", output)
	}
}

func TestConfigSetSalt(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "set-salt", "pepper")
	if err != nil {
		t.Fatalf("set-salt failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "previous salt") {
		t.Errorf("Expected warning about previous salt, got %q", output)
	}

	config, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Store.Salt != "pepper" {
		t.Errorf("Expected salt 'pepper', got %q", config.Store.Salt)
	}
	if _, err := os.Stat(filepath.Join(configs.UserConsonSettings.UserConfigsPath, "config.toml")); err != nil {
		t.Errorf("Expected config file: %v", err)
	}

	if _, err := runCLI(t, "config", "set-salt", "a\n"); err == nil {
		t.Error("Expected an invalid salt to be rejected")
	}

	output, err = runCLI(t, "config", "set-salt", "")
	if !errors.Is(err, kerrors.ErrEmptySalt) {
		t.Errorf("Expected ErrEmptySalt, got %v", err)
	}
	if !strings.Contains(output, "must not be empty") {
		t.Errorf("Expected empty salt message, got %q", output)
	}
}
