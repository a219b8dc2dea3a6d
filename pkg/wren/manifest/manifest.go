// Package manifest journals completed delete batches to disk so `wren
// trash list --history` can show what was trashed, when, and from where.
// The journal is append-only JSON lines; it is informational only and
// has no bearing on undo, which works purely off the in-memory log and
// the trash directory itself.
package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry records one delete batch.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	SourceDir  string    `json:"source_dir"`
	TrashPaths []string  `json:"trash_paths"`
	Names      []string  `json:"names"`
	TotalBytes int64     `json:"total_bytes"`
}

// Journal appends and reads delete-batch entries at a fixed path.
type Journal struct {
	path string
	mu   sync.Mutex
}

// New creates a Journal at the given path. The file is created lazily on
// first append.
func New(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest path cannot be empty")
	}
	return &Journal{path: path}, nil
}

// Append writes one entry, assigning it an id and timestamp.
func (j *Journal) Append(sourceDir string, trashPaths, names []string, totalBytes int64) (*Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := &Entry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		SourceDir:  sourceDir,
		TrashPaths: trashPaths,
		Names:      names,
		TotalBytes: totalBytes,
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest entry: %w", err)
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("writing manifest entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest first. If limit is positive, only that
// many are returned. A missing journal yields an empty list.
func (j *Journal) List(limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// A torn final line from a crashed write is skipped.
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	// Reverse to newest-first.
	for i, k := 0, len(entries)-1; i < k; i, k = i+1, k-1 {
		entries[i], entries[k] = entries[k], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
