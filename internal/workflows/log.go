package workflows

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PolarWolf314/envc/internal/audit"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000000Z"
	dateLayout      = "2006-01-02"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log to read.
	Path string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

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

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if a date filter is malformed.
func Log(opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	var err error

	if opts.Since != "" {
		since, err = time.Parse(dateLayout, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}
	if opts.Until != "" {
		until, err = time.Parse(dateLayout, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	filtered := entries
	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}
	if !since.IsZero() || !until.IsZero() {
		filtered = filterByTime(filtered, since, until)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterByTime keeps entries within [since, until]. A zero bound is open.
// Entries with unparseable timestamps are dropped.
func filterByTime(entries []audit.Entry, since, until time.Time) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if !since.IsZero() && t.Before(since) {
			continue
		}
		if !until.IsZero() && t.After(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the files and keys of an entry.
func FormatDetails(e audit.Entry) string {
	var parts []string

	switch {
	case len(e.Files) == 0:
	case len(e.Files) > 3:
		parts = append(parts, fmt.Sprintf("%d files", len(e.Files)))
	default:
		names := make([]string, len(e.Files))
		for i, f := range e.Files {
			names[i] = filepath.Base(f)
		}
		parts = append(parts, strings.Join(names, ", "))
	}

	if e.KeysCount > 0 {
		parts = append(parts, fmt.Sprintf("%d keys", e.KeysCount))
	}
	if e.Error != "" {
		parts = append(parts, "failed: "+e.Error)
	}

	return strings.Join(parts, ", ")
}
