package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func intPtr(i int) *int { return &i }

func TestLog_CreatesFile(t *testing.T) {
	dir := t.TempDir()

	Log(dir, Entry{User: "alice", Operation: "create", Name: "db"})

	info, err := os.Stat(LogPath(dir))
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 && os.PathSeparator == '/' {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	dir := t.TempDir()

	Log(dir, Entry{User: "alice", Operation: "create"})
	Log(dir, Entry{User: "bob", Operation: "veil"})
	Log(dir, Entry{User: "charlie", Operation: "save"})

	data, err := os.ReadFile(LogPath(dir))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_FillsIDAndTimestamp(t *testing.T) {
	dir := t.TempDir()

	Log(dir, Entry{Operation: "dispose", Name: "db"})

	entries, err := ReadEntries(dir)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	if _, err := uuid.Parse(entries[0].ID); err != nil {
		t.Errorf("Entry id %q is not a UUID: %v", entries[0].ID, err)
	}
	if !strings.HasSuffix(entries[0].Timestamp, "Z") {
		t.Errorf("Expected UTC timestamp, got %q", entries[0].Timestamp)
	}
}

func TestLog_KeepsProvidedFields(t *testing.T) {
	dir := t.TempDir()

	entry := Entry{
		ID:        "fixed-id",
		Timestamp: "2024-01-15T10:30:00.123456Z",
		User:      "alice",
		Host:      "build-01",
		Operation: "veil",
		Name:      "pc1",
		Index:     intPtr(0),
		File:      filepath.Join(dir, "config.json"),
	}
	Log(dir, entry)

	data, err := os.ReadFile(LogPath(dir))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if parsed.ID != entry.ID || parsed.Timestamp != entry.Timestamp {
		t.Errorf("Provided id/timestamp were overwritten: %+v", parsed)
	}
	if parsed.Host != "build-01" || parsed.Operation != "veil" || parsed.Name != "pc1" {
		t.Errorf("Unexpected entry %+v", parsed)
	}
	if parsed.Index == nil || *parsed.Index != 0 {
		t.Errorf("Expected index 0 to be kept, got %v", parsed.Index)
	}
}

func TestLog_OmitsEmptyOptionalFields(t *testing.T) {
	dir := t.TempDir()

	Log(dir, Entry{Operation: "save"})

	data, err := os.ReadFile(LogPath(dir))
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	for _, field := range []string{`"name"`, `"index"`, `"count"`, `"file"`} {
		if strings.Contains(string(data), field) {
			t.Errorf("Expected %s to be omitted, got %s", field, data)
		}
	}
}

func TestLog_EmptyDirSkips(t *testing.T) {
	// Should not panic or create anything relative to the working directory.
	Log("", Entry{Operation: "create"})
}

func TestLog_UnwritableDirIsIgnored(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the log directory should go.
	if err := os.WriteFile(filepath.Join(dir, DirName), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}

	Log(dir, Entry{Operation: "create"})
}

func TestLogWithUser(t *testing.T) {
	entry := LogWithUser("unveil")

	if entry.Operation != "unveil" {
		t.Errorf("Expected operation 'unveil', got %q", entry.Operation)
	}
	if entry.User == "" {
		t.Error("Expected user to be populated")
	}
	if entry.Host == "" {
		t.Error("Expected host to be populated")
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	entries, err := ReadEntries(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []string
	}{
		{"Empty", "", nil},
		{"Single", `{"op":"create"}`, []string{"create"}},
		{"TrailingNewline", "{\"op\":\"create\"}\n{\"op\":\"veil\"}\n", []string{"create", "veil"}},
		{"BlankLines", "\n{\"op\":\"create\"}\n\n{\"op\":\"save\"}", []string{"create", "save"}},
		{"SkipsMalformed", "{\"op\":\"create\"}\nnot json\n{\"op\":\"load\"", []string{"create"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := ParseEntries([]byte(tc.data))
			if err != nil {
				t.Fatalf("ParseEntries failed: %v", err)
			}
			if len(entries) != len(tc.expected) {
				t.Fatalf("Expected %d entries, got %d", len(tc.expected), len(entries))
			}
			for i, op := range tc.expected {
				if entries[i].Operation != op {
					t.Errorf("Entry %d: expected op %q, got %q", i, op, entries[i].Operation)
				}
			}
		})
	}
}
