package workflows

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/params"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(t, dir)
	if err := s.Create("db", "h", "5432"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	log, buf := testLogger()

	result, err := Save(ctx, s, SaveOptions{Logger: log})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !result.OK() || result.Parameters != 1 || result.Path != filepath.Join(dir, "config.json") {
		t.Errorf("Unexpected result %+v", result)
	}
	if !strings.Contains(buf.String(), "Parameters saved to") {
		t.Errorf("Expected status line, got %q", buf.String())
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("Expected parameter file: %v", err)
	}
}

func TestSaveFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		recover bool
	}{
		{"Propagates", false},
		{"Recovers", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, missing)
			_ = s.Create("a", "1")
			log, buf := testLogger()

			result, err := Save(ctx, s, SaveOptions{Recover: tc.recover, Logger: log})

			if !strings.Contains(buf.String(), "could not be saved") {
				t.Errorf("Expected failure status line, got %q", buf.String())
			}
			if tc.recover {
				if err != nil {
					t.Fatalf("Expected recovered save to return nil error, got %v", err)
				}
				if result.OK() || !errors.Is(result.Err, kerrors.ErrPersistence) {
					t.Errorf("Expected persistence error in result, got %v", result.Err)
				}
				return
			}
			var perr *params.PersistenceError
			if !errors.As(err, &perr) || perr.Op != "save" {
				t.Errorf("Expected *PersistenceError from save, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writer := newTestStore(t, dir)
	_ = writer.Create("shared", "file")
	_ = writer.Create("fileOnly", "x", "y")
	if err := writer.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s := newTestStore(t, dir)
	_ = s.Create("memoryOnly", "m")
	_ = s.Create("shared", "memory")

	result, err := Load(ctx, s, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !result.OK() || result.Parameters != 3 {
		t.Errorf("Unexpected result %+v", result)
	}
	if v, _ := s.Get("shared"); v.String() != "file" {
		t.Errorf("Expected file value to win, got %q", v.String())
	}
	if _, ok := s.Get("memoryOnly"); !ok {
		t.Error("Expected in-memory parameter to survive the merge")
	}
}

func TestLoadFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("[1, 2]"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	s := newTestStore(t, dir)
	_ = s.Create("kept", "1")
	log, buf := testLogger()

	result, err := Load(ctx, s, LoadOptions{Recover: true, Logger: log})
	if err != nil {
		t.Fatalf("Expected recovered load to return nil error, got %v", err)
	}
	if result.OK() {
		t.Error("Expected failure in result")
	}
	if result.Parameters != 1 || s.Len() != 1 {
		t.Errorf("Expected store to be unchanged, got %d parameters", s.Len())
	}
	if !strings.Contains(buf.String(), "could not be loaded") {
		t.Errorf("Expected failure status line, got %q", buf.String())
	}

	if _, err := Load(ctx, s, LoadOptions{}); !errors.Is(err, kerrors.ErrPersistence) {
		t.Errorf("Expected ErrPersistence without recovery, got %v", err)
	}
}

func TestLoadMissingFileRecovered(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	result, err := Load(ctx, s, LoadOptions{Recover: true})
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if !errors.Is(result.Err, os.ErrNotExist) {
		t.Errorf("Expected not-exist cause, got %v", result.Err)
	}
}
