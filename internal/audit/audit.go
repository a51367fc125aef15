package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/kowhai/internal/configs"
)

// Entry represents a single audit log entry. Entries record secret
// names and upload targets only; secret values and access tokens are
// never written here.
type Entry struct {
	Timestamp string `json:"ts"`    // RFC3339 with microseconds.
	Login     string `json:"login"` // GitHub login performing the action.
	Operation string `json:"op"`    // Operation name.
	Repo      string `json:"repo,omitempty"`

	// Optional fields depending on operation.
	Secrets      []string `json:"secrets,omitempty"`       // Secret names only.
	FilesCount   int      `json:"files_count,omitempty"`   // For sync.
	SkippedCount int      `json:"skipped_count,omitempty"` // Names rejected by validation.
	DryRun       bool     `json:"dry_run,omitempty"`       // For sync previews.
}

// ForOperation is a convenience constructor for an entry with the
// operation and login filled in.
func ForOperation(op, login string) Entry {
	return Entry{Operation: op, Login: login}
}

// Log appends an entry to the audit log.
// If logging fails, the operation continues without error. Operations
// should not fail just because audit logging failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// Open file for appending (create if doesn't exist).
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	dataPath := configs.UserKowhaiSettings.UserDataPath
	if dataPath == "" {
		return ""
	}
	return filepath.Join(dataPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
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
