package workflows

import (
	"errors"
	"testing"

	"github.com/PolarWolf314/conson/internal/audit"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
)

func writeAuditEntries(t *testing.T, dir string) {
	t.Helper()
	index := 1
	entries := []audit.Entry{
		{Timestamp: "2024-01-10T09:00:00.000000Z", User: "alice", Operation: "create", Name: "db", Count: 2},
		{Timestamp: "2024-01-15T10:30:00.000000Z", User: "bob", Operation: "veil", Name: "db", Index: &index},
		{Timestamp: "2024-01-20T12:00:00.000000Z", User: "alice", Operation: "save", Count: 3},
		{Timestamp: "2024-02-01T08:00:00.000000Z", User: "Alice", Operation: "dispose", Name: "port"},
	}
	for _, e := range entries {
		audit.Log(dir, e)
	}
}

func TestLogFilters(t *testing.T) {
	dir := t.TempDir()
	writeAuditEntries(t, dir)

	tests := []struct {
		name     string
		opts     LogOptions
		expected []string
	}{
		{"All", LogOptions{}, []string{"create", "veil", "save", "dispose"}},
		{"User", LogOptions{User: "alice"}, []string{"create", "save", "dispose"}},
		{"Name", LogOptions{Name: "db"}, []string{"create", "veil"}},
		{"Operations", LogOptions{Operations: "veil, dispose"}, []string{"veil", "dispose"}},
		{"Since", LogOptions{Since: "2024-01-15"}, []string{"veil", "save", "dispose"}},
		{"Until", LogOptions{Until: "2024-01-15"}, []string{"create", "veil"}},
		{"Limit", LogOptions{Limit: 2}, []string{"save", "dispose"}},
		{"ReverseLimit", LogOptions{Reverse: true, Limit: 2}, []string{"dispose", "save"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Directory = dir
			result, err := Log(ctx, tc.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 4 {
				t.Errorf("Expected 4 entries before filtering, got %d", result.TotalEntriesBeforeFilter)
			}
			if len(result.Entries) != len(tc.expected) {
				t.Fatalf("Expected %d entries, got %d", len(tc.expected), len(result.Entries))
			}
			for i, op := range tc.expected {
				if result.Entries[i].Operation != op {
					t.Errorf("Entry %d: expected %q, got %q", i, op, result.Entries[i].Operation)
				}
			}
		})
	}
}

func TestLogErrors(t *testing.T) {
	if _, err := Log(ctx, LogOptions{Directory: t.TempDir()}); !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got %v", err)
	}

	dir := t.TempDir()
	writeAuditEntries(t, dir)
	if _, err := Log(ctx, LogOptions{Directory: dir, Since: "15/01/2024"}); !errors.Is(err, kerrors.ErrInvalidDateFormat) {
		t.Errorf("Expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestFormatDetails(t *testing.T) {
	index := 2
	tests := []struct {
		entry    audit.Entry
		expected string
	}{
		{audit.Entry{Operation: "create", Name: "db", Count: 2}, "db (2 values)"},
		{audit.Entry{Operation: "veil", Name: "db", Index: &index}, "db[2]"},
		{audit.Entry{Operation: "veil", Name: "pw"}, "pw"},
		{audit.Entry{Operation: "dispose", Name: "db"}, "db"},
		{audit.Entry{Operation: "load", Count: 5}, "5 parameters"},
		{audit.Entry{Operation: "unveil"}, ""},
	}
	for _, tc := range tests {
		if got := FormatDetails(tc.entry); got != tc.expected {
			t.Errorf("FormatDetails(%+v) = %q, expected %q", tc.entry, got, tc.expected)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime("2024-01-15T10:30:00.123456Z"); got != "2024-01-15 10:30:00" {
		t.Errorf("Unexpected %q", got)
	}
	if got := FormatDateTime("garbage"); got != "garbage" {
		t.Errorf("Unexpected %q", got)
	}
}
