package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/conson/internal/utils"
)

const (
	// DirName is the directory created next to the parameter file.
	DirName = ".conson"

	// FileName is the audit log file name inside DirName.
	FileName = "audit.jsonl"
)

// Entry represents a single audit log entry. Parameter values and tokens
// are never recorded.
type Entry struct {
	ID        string `json:"id"`   // Random UUID of the entry.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user performing the action.
	Host      string `json:"host"` // Hostname of the machine.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Name  string `json:"name,omitempty"`  // For create/dispose/veil.
	Index *int   `json:"index,omitempty"` // For veil of a list element.
	Count int    `json:"count,omitempty"` // For create/save/load.
	File  string `json:"file,omitempty"`  // Parameter file the operation touched.
}

// Log appends an entry to the audit log in dir.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(dir string, entry Entry) {
	if dir == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return
	}

	f, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser is a convenience function that populates user and host fields.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}

	if username, err := utils.GetUsername(); err == nil {
		entry.User = username
	}
	if hostname, err := utils.GetHostname(); err == nil {
		entry.Host = hostname
	}

	return entry
}

// LogPath returns the path to the audit log file for dir.
func LogPath(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// ReadEntries reads all entries from the audit log in dir.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(dir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
