package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Setenv("CONSON_TEST_DIR", "/srv/conson")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Home", "~", homeDir},
		{"HomeSubdir", "~/projects", filepath.Join(homeDir, "projects")},
		{"EnvVar", "$CONSON_TEST_DIR/app", filepath.Clean("/srv/conson/app")},
		{"Relative", "configs", filepath.Join(wd, "configs")},
		{"Absolute", "/etc/app", filepath.Clean("/etc/app")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandPath(tc.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ExpandPath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !IsDir(dir) {
		t.Error("Expected directory to be reported")
	}
	if IsDir(file) {
		t.Error("Expected file not to be a directory")
	}
	if IsDir(filepath.Join(dir, "missing")) {
		t.Error("Expected missing path not to be a directory")
	}
}
