package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/conson/internal/audit"
	kerrors "github.com/PolarWolf314/conson/internal/errors"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Directory holds the .conson audit directory.
	Directory string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by OS user name.
	User string

	// Name filters entries by parameter name.
	Name string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := audit.ReadEntries(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if entries == nil {
		if _, err := os.Stat(audit.LogPath(opts.Directory)); errors.Is(err, fs.ErrNotExist) {
			return nil, kerrors.ErrNoFilesFound
		}
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.User != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Name != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return e.Name == opts.Name
		})
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if !since.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if !until.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details of a log entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "create":
		return fmt.Sprintf("%s (%d values)", e.Name, e.Count)
	case "veil":
		if e.Index != nil {
			return fmt.Sprintf("%s[%d]", e.Name, *e.Index)
		}
		return e.Name
	case "dispose":
		return e.Name
	case "save", "load":
		return fmt.Sprintf("%d parameters", e.Count)
	default:
		return ""
	}
}
