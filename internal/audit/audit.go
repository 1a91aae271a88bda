package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Entry represents a single audit log entry. It never carries values or
// passwords, only file paths and key counts.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	RunID     string `json:"run_id"` // One per batch.
	Operation string `json:"op"`     // encrypt, decrypt or setenv.

	Files     []string `json:"files,omitempty"`   // Input files written.
	Outputs   []string `json:"outputs,omitempty"` // Output files written.
	KeysCount int      `json:"keys_count,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
	Error     string   `json:"error,omitempty"` // Set when the batch stopped early.
}

// NewEntry returns an entry for op with a fresh run ID.
func NewEntry(op string) Entry {
	return Entry{
		RunID:     uuid.NewString(),
		Operation: op,
	}
}

// Log appends entry to the audit log at path. Writers in other processes
// are serialized through a lock file next to the log.
// If logging fails the error is returned for the caller to report, but
// operations should not fail just because audit logging failed.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.RunID == "" {
		entry.RunID = uuid.NewString()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
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
				// Partial writes from a crashed process.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
