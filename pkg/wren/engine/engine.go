// Package engine implements the manipulation core of the wren file
// manager: trash-based delete, paste/restore with deterministic collision
// resolution, rename, and the inverse/forward effects behind undo and
// redo. Every call is synchronous and runs to completion on the calling
// goroutine; the interactive loop is the only driver.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/logging"
	"github.com/wrenfm/wren/pkg/wren/progress"
	"github.com/wrenfm/wren/pkg/wren/types"
)

// Engine mutates the filesystem on behalf of the interactive loop. It
// owns the trash directory, the clipboard, and the wiring into the
// manipulation log.
type Engine struct {
	trashDir  string
	clipboard []types.Item
	log       *history.Log
	report    progress.Func
	logger    *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress sets the progress reporter used during recursive walks.
func WithProgress(f progress.Func) Option {
	return func(e *Engine) { e.report = f }
}

// New creates an Engine rooted at the given trash directory, creating it
// if needed.
func New(trashDir string, log *history.Log, opts ...Option) (*Engine, error) {
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating trash directory: %w", err)
	}

	e := &Engine{
		trashDir: trashDir,
		log:      log,
		logger:   logging.Get("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// TrashDir returns the engine-owned trash directory.
func (e *Engine) TrashDir() string { return e.trashDir }

// Log returns the manipulation log the engine records into.
func (e *Engine) Log() *history.Log { return e.log }

// Clipboard returns the most recently yanked or deleted items.
func (e *Engine) Clipboard() []types.Item { return e.clipboard }

// Yank replaces the clipboard with the given items. The previous
// clipboard content is discarded, never merged.
func (e *Engine) Yank(items []types.Item) {
	e.clipboard = append([]types.Item(nil), items...)
}

// Rename renames a single path. The rename is recorded when record is
// true so it can be undone.
func (e *Engine) Rename(from, to string, record bool) error {
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %q: %w", from, err)
	}
	e.logger.Info("renamed", "from", from, "to", to)

	if record {
		e.log.Append(&history.RenameRecord{RecordID: newRecordID(), From: from, To: to})
	}
	return nil
}

// Undo inverts the most recent active record.
func (e *Engine) Undo() (history.Record, error) {
	rec, err := e.log.Undo(e)
	if err != nil {
		return rec, err
	}
	e.logger.Info("undid manipulation", "id", rec.ID())
	return rec, nil
}

// Redo re-applies the most recently undone record.
func (e *Engine) Redo() (history.Record, error) {
	rec, err := e.log.Redo(e)
	if err != nil {
		return rec, err
	}
	e.logger.Info("redid manipulation", "id", rec.ID())
	return rec, nil
}

// RenamePath implements history.Effector.
func (e *Engine) RenamePath(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("renaming %q: %w", from, err)
	}
	return nil
}

// newRecordID mints the correlation id attached to each logged record.
func newRecordID() uuid.UUID { return uuid.New() }

// snapshotAt rebuilds an item snapshot for a path that is known to
// exist, degrading metadata the same way the listing builder does.
func snapshotAt(path string) types.Item {
	item := types.Item{
		Kind: types.KindFile,
		Name: filepath.Base(path),
		Path: path,
	}
	meta, err := os.Lstat(path)
	if err != nil {
		return item
	}
	mod := meta.ModTime()
	item.Modified = &mod
	item.Size = meta.Size()
	if meta.IsDir() {
		item.Kind = types.KindDirectory
	} else if meta.Mode()&os.ModeSymlink != 0 {
		item.Kind = types.KindSymlink
	}
	return item
}
