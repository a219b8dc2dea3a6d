// Package history implements the manipulation log: an append-only,
// in-memory sequence of reversible filesystem operations with undo/redo
// semantics. The log records what happened; applying inverse or forward
// effects on disk is delegated to an Effector so the log itself never
// touches the filesystem.
package history

import (
	"github.com/google/uuid"

	"github.com/wrenfm/wren/pkg/wren/types"
)

// Record is one logged, invertible manipulation.
type Record interface {
	// ID returns the correlation id assigned when the record was created.
	ID() uuid.UUID
}

// DeleteRecord captures a completed trash-based delete batch.
type DeleteRecord struct {
	RecordID uuid.UUID

	// TrashPaths holds the trash entry for each deleted target, in input
	// order. An empty string marks a target that had nothing to preserve
	// (a broken symlink) and cannot be restored.
	TrashPaths []string

	// Original holds the pre-deletion item snapshots.
	Original []types.Item

	// Dir is the directory the targets were deleted from.
	Dir string
}

// ID implements Record.
func (r *DeleteRecord) ID() uuid.UUID { return r.RecordID }

// PutRecord captures a completed paste batch.
type PutRecord struct {
	RecordID uuid.UUID

	// Original holds the source item snapshots that were pasted.
	Original []types.Item

	// Put holds the produced destination paths, in input order.
	Put []string

	// Dir is the destination directory.
	Dir string
}

// ID implements Record.
func (r *PutRecord) ID() uuid.UUID { return r.RecordID }

// RenameRecord captures a single rename.
type RenameRecord struct {
	RecordID uuid.UUID

	// From is the path before the rename, To the path after.
	From string
	To   string
}

// ID implements Record.
func (r *RenameRecord) ID() uuid.UUID { return r.RecordID }

// Effector applies inverse and forward effects of records on disk. The
// manipulation engine implements it; every call is unlogged so replay
// can never pollute the history it replays from.
//
// Redo calls may legitimately change a record: re-deleting mints fresh
// trash names and re-pasting may resolve collisions differently, so the
// effector updates the record in place to keep later undos correct.
type Effector interface {
	// UndoDelete restores each trash entry of rec back into rec.Dir under
	// its original name and removes the trash entry.
	UndoDelete(rec *DeleteRecord) error

	// RedoDelete moves rec.Original back into the trash, refreshing
	// rec.TrashPaths.
	RedoDelete(rec *DeleteRecord) error

	// UndoPut removes the paths rec produced.
	UndoPut(rec *PutRecord) error

	// RedoPut pastes rec.Original into rec.Dir again, refreshing rec.Put.
	RedoPut(rec *PutRecord) error

	// RenamePath renames a single path.
	RenamePath(from, to string) error
}

// Log is the ordered record sequence plus the redo pointer: the trailing
// redo records (counted from the end) are undone and redoable, the
// prefix is committed history. The zero value is an empty, usable log.
//
// The log lives for the process lifetime only; it is never persisted.
type Log struct {
	records []Record
	redo    int
}

// Len returns the total number of records, including undone ones.
func (l *Log) Len() int { return len(l.records) }

// Undoable returns how many records can currently be undone.
func (l *Log) Undoable() int { return len(l.records) - l.redo }

// Redoable returns how many undone records can currently be redone.
func (l *Log) Redoable() int { return l.redo }

// Append pushes a new record. Any redoable tail is discarded first: once
// a fresh manipulation lands, the undone branch is gone for good.
func (l *Log) Append(rec Record) {
	if l.redo > 0 {
		l.records = l.records[:len(l.records)-l.redo]
		l.redo = 0
	}
	l.records = append(l.records, rec)
}

// Undo applies the inverse of the most recent active record through fx.
// On success the record becomes redoable. On failure the redo pointer is
// untouched so the same undo can be retried once the underlying disk
// condition is fixed.
func (l *Log) Undo(fx Effector) (Record, error) {
	idx := len(l.records) - l.redo - 1
	if idx < 0 {
		return nil, types.ErrNothingToUndo
	}

	rec := l.records[idx]
	if err := l.invert(fx, rec); err != nil {
		return rec, err
	}
	l.redo++
	return rec, nil
}

// Redo re-applies the forward effect of the most recently undone record
// through fx. On failure the redo pointer is untouched.
func (l *Log) Redo(fx Effector) (Record, error) {
	if l.redo == 0 {
		return nil, types.ErrNothingToRedo
	}

	rec := l.records[len(l.records)-l.redo]
	if err := l.apply(fx, rec); err != nil {
		return rec, err
	}
	l.redo--
	return rec, nil
}

func (l *Log) invert(fx Effector, rec Record) error {
	switch r := rec.(type) {
	case *DeleteRecord:
		return fx.UndoDelete(r)
	case *PutRecord:
		return fx.UndoPut(r)
	case *RenameRecord:
		return fx.RenamePath(r.To, r.From)
	default:
		return types.ErrNotFound
	}
}

func (l *Log) apply(fx Effector, rec Record) error {
	switch r := rec.(type) {
	case *DeleteRecord:
		return fx.RedoDelete(r)
	case *PutRecord:
		return fx.RedoPut(r)
	case *RenameRecord:
		return fx.RenamePath(r.From, r.To)
	default:
		return types.ErrNotFound
	}
}
