package engine

import (
	"os"
	"path/filepath"
	"time"

	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/types"
)

// DeleteAndYank moves targets into the trash in input order and returns
// the resulting trash paths. The clipboard is replaced with the trashed
// snapshots regardless of record, so a delete always doubles as a yank.
//
// The first hard failure aborts the whole batch and is returned as-is;
// targets already trashed stay trashed, with no compensating rollback.
// When record is true one DeleteRecord covering the batch is appended to
// the manipulation log.
func (e *Engine) DeleteAndYank(targets []types.Item, sourceDir string, record bool) ([]string, error) {
	trashed, err := e.deleteBatch(targets)
	if err != nil {
		return trashed, err
	}

	e.logger.Info("deleted", "count", len(targets), "dir", sourceDir)

	if record {
		e.log.Append(&history.DeleteRecord{
			RecordID:   newRecordID(),
			TrashPaths: trashed,
			Original:   append([]types.Item(nil), targets...),
			Dir:        sourceDir,
		})
	}
	return trashed, nil
}

// deleteBatch is the unlogged forward effect of a delete: it replaces
// the clipboard and trashes each target in order. The clipboard slice
// is freshly allocated so snapshots handed out earlier stay intact.
func (e *Engine) deleteBatch(targets []types.Item) ([]string, error) {
	e.clipboard = nil

	trashed := make([]string, 0, len(targets))
	for _, item := range targets {
		var (
			trashPath string
			err       error
		)
		if item.Kind == types.KindDirectory {
			trashPath, err = e.trashTree(item)
		} else {
			trashPath, err = e.trashFile(item)
		}
		if err != nil {
			return trashed, err
		}
		trashed = append(trashed, trashPath)
	}
	return trashed, nil
}

// trashFile moves a single file or symlink into the trash via copy then
// remove. A symlink whose target no longer resolves has no content to
// preserve and is unlinked directly; its trash path is empty.
func (e *Engine) trashFile(item types.Item) (string, error) {
	if item.Kind == types.KindSymlink {
		if _, err := os.Stat(item.Path); err != nil {
			if err := os.Remove(item.Path); err != nil {
				return "", &types.RemoveError{Path: item.Path, Err: err}
			}
			e.logger.Debug("unlinked broken symlink", "path", item.Path)
			return "", nil
		}
	}

	trashName := types.FormatTrashName(time.Now(), item.Name)
	to := filepath.Join(e.trashDir, trashName)

	if err := copyFile(item.Path, to); err != nil {
		return "", &types.CopyError{Path: item.Path, Err: err}
	}
	e.yankTrashed(item, to, trashName)

	if err := os.Remove(item.Path); err != nil {
		// The orphaned trash copy is left as-is.
		return "", &types.RemoveError{Path: item.Path, Err: err}
	}
	return to, nil
}

// trashTree moves a directory subtree into the trash, preserving its
// relative structure under a timestamp-prefixed trash root. The source
// is only removed once the entire copy succeeded.
func (e *Engine) trashTree(item types.Item) (string, error) {
	trashName := types.FormatTrashName(time.Now(), item.Name)
	to := filepath.Join(e.trashDir, trashName)

	if err := e.copyTree(item.Path, to); err != nil {
		return "", err
	}
	e.yankTrashed(item, to, trashName)

	if err := os.RemoveAll(item.Path); err != nil {
		return "", &types.RemoveError{Path: item.Path, Err: err}
	}
	return to, nil
}

// yankTrashed appends the trashed counterpart of item to the clipboard,
// keeping the pre-deletion metadata but pointing at the trash entry.
func (e *Engine) yankTrashed(item types.Item, trashPath, trashName string) {
	item.Path = trashPath
	item.Name = trashName
	e.clipboard = append(e.clipboard, item)
}

// UndoDelete implements history.Effector: each trash entry is restored
// back into the record's source directory under its original name
// (collision-suffixed if the name was reused since), then removed from
// the trash. Entries with no trash counterpart are skipped: broken
// symlinks never had one, and an entry already consumed by an earlier
// partial undo has nothing left to restore, so a retried undo picks up
// where the failed one stopped.
func (e *Engine) UndoDelete(rec *history.DeleteRecord) error {
	taken, err := takenNames(rec.Dir)
	if err != nil {
		return err
	}

	for _, trashPath := range rec.TrashPaths {
		if trashPath == "" {
			continue
		}
		if _, err := os.Lstat(trashPath); os.IsNotExist(err) {
			continue
		}
		item := snapshotAt(trashPath)
		if _, err := e.putOne(item, rec.Dir, taken); err != nil {
			return err
		}
		if err := os.RemoveAll(trashPath); err != nil {
			return &types.RemoveError{Path: trashPath, Err: err}
		}
	}
	return nil
}

// RedoDelete implements history.Effector: the original items are moved
// back into the trash. Fresh trash names are minted, so the record's
// trash paths are refreshed for any later undo.
func (e *Engine) RedoDelete(rec *history.DeleteRecord) error {
	trashed, err := e.deleteBatch(rec.Original)
	if err != nil {
		return err
	}
	rec.TrashPaths = trashed
	return nil
}
