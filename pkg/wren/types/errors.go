package types

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that an index or path does not resolve to a
// current item.
var ErrNotFound = errors.New("no such item")

// ErrNothingToUndo indicates the manipulation log has no record left to
// undo.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo indicates the manipulation log has no undone record
// left to redo.
var ErrNothingToRedo = errors.New("nothing to redo")

// ErrBadName indicates a filename encountered during a recursive walk
// could not be represented as valid text.
var ErrBadName = errors.New("filename is not valid text")

// CopyError reports a failed content copy. The batch that produced it
// was aborted; entries processed before the failure keep their effects.
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("cannot copy %q: %v", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// RemoveError reports a failed source removal after a successful copy.
// The copied counterpart (in the trash or the destination) is left in
// place as an orphan.
type RemoveError struct {
	Path string
	Err  error
}

func (e *RemoveError) Error() string {
	return fmt.Sprintf("cannot remove %q: %v", e.Path, e.Err)
}

func (e *RemoveError) Unwrap() error { return e.Err }
