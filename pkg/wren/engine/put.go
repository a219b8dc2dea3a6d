package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/types"
)

// Paste copies targets into dir, the directory currently on display, and
// records one PutRecord for the batch. current supplies the names
// already present so the collision set does not require re-reading a
// directory the caller just listed.
//
// Items that live in the trash directory restore under their original
// name: the timestamp prefix is stripped before collision resolution.
func (e *Engine) Paste(targets []types.Item, dir string, current []types.Item) ([]string, error) {
	taken := make(map[string]struct{}, len(current))
	for _, item := range current {
		taken[item.Name] = struct{}{}
	}

	put, err := e.putBatch(targets, dir, taken)
	if err != nil {
		return put, err
	}

	e.logger.Info("pasted", "count", len(targets), "dir", dir)

	e.log.Append(&history.PutRecord{
		RecordID: newRecordID(),
		Original: append([]types.Item(nil), targets...),
		Put:      put,
		Dir:      dir,
	})
	return put, nil
}

// PutTo copies targets into an explicit destination without recording
// anything. This is the replay path used by undo and redo; keeping it
// unlogged stops history replay from polluting the history it replays.
func (e *Engine) PutTo(targets []types.Item, dir string) ([]string, error) {
	taken, err := takenNames(dir)
	if err != nil {
		return nil, err
	}
	return e.putBatch(targets, dir, taken)
}

// putBatch copies each target in order, aborting on the first failure.
// Paths produced before the failure are returned alongside the error.
func (e *Engine) putBatch(targets []types.Item, dir string, taken map[string]struct{}) ([]string, error) {
	put := make([]string, 0, len(targets))
	for _, item := range targets {
		p, err := e.putOne(item, dir, taken)
		if err != nil {
			return put, err
		}
		put = append(put, p)
	}
	return put, nil
}

// putOne copies a single item into dir under a collision-free name and
// claims that name in taken. Directories are mirrored recursively; the
// source is never touched.
func (e *Engine) putOne(item types.Item, dir string, taken map[string]struct{}) (string, error) {
	name := resolveCollision(item.RestoredName(e.trashDir), taken)
	taken[name] = struct{}{}
	to := filepath.Join(dir, name)

	if item.Kind == types.KindDirectory {
		if err := e.copyTree(item.Path, to); err != nil {
			return "", err
		}
		return to, nil
	}

	if err := copyFile(item.Path, to); err != nil {
		return "", &types.CopyError{Path: item.Path, Err: err}
	}
	return to, nil
}

// UndoPut implements history.Effector by removing each produced path.
// Intermediate directories that existed before the put are left alone.
func (e *Engine) UndoPut(rec *history.PutRecord) error {
	for _, p := range rec.Put {
		if err := os.RemoveAll(p); err != nil {
			return &types.RemoveError{Path: p, Err: err}
		}
	}
	return nil
}

// RedoPut implements history.Effector by pasting the original items into
// the recorded destination again. Collision suffixes may differ from the
// first run, so the produced paths are refreshed.
func (e *Engine) RedoPut(rec *history.PutRecord) error {
	put, err := e.PutTo(rec.Original, rec.Dir)
	if err != nil {
		return err
	}
	rec.Put = put
	return nil
}

// takenNames enumerates the names currently present in dir. One flat
// namespace covers files and directories alike.
func takenNames(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}
	taken := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		taken[entry.Name()] = struct{}{}
	}
	return taken, nil
}

// resolveCollision returns name unchanged when it is free, otherwise the
// first "name_<n>" that is. The caller claims the result immediately so
// duplicate-named batch entries still resolve distinctly.
func resolveCollision(name string, taken map[string]struct{}) string {
	if _, exists := taken[name]; !exists {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}
