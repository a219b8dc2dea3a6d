// Package types provides the core data types for the wren file manager.
// It defines the Item snapshot of a filesystem entry, the trash naming
// scheme, and the typed errors surfaced by the manipulation engines.
package types

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Kind classifies a filesystem entry.
type Kind int

// Entry kinds. Anything that is not a directory or a symlink is a File.
const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Item is an immutable snapshot of one filesystem entry taken at listing
// time. It is a value, not a live handle: the entry may have changed or
// vanished since the snapshot was built.
type Item struct {
	// Kind is the entry classification at snapshot time.
	Kind Kind `json:"kind"`

	// Name is the final path component as displayed.
	Name string `json:"name"`

	// Path is the absolute path of the entry at snapshot time.
	Path string `json:"path"`

	// SymlinkDir is the resolved target path when the entry is a symlink
	// pointing at a directory. Empty otherwise.
	SymlinkDir string `json:"symlink_dir,omitempty"`

	// Size is the entry size in bytes. Zero when metadata was unreadable.
	Size int64 `json:"size"`

	// Ext is the lower-cased extension without the leading dot, used for
	// opener lookup. Empty when the name has no extension.
	Ext string `json:"ext,omitempty"`

	// Modified is the last modification time. Nil when metadata was
	// unreadable.
	Modified *time.Time `json:"modified,omitempty"`

	// Hidden reports whether the name starts with a dot.
	Hidden bool `json:"hidden"`
}

// IsDir reports whether the item is a directory or a symlink that
// resolves to one.
func (it Item) IsDir() bool {
	return it.Kind == KindDirectory || (it.Kind == KindSymlink && it.SymlinkDir != "")
}

// HumanSize returns the item size formatted with binary (IEC) units.
func (it Item) HumanSize() string {
	return humanize.IBytes(uint64(it.Size))
}

// trashSep separates the epoch-seconds prefix from the original name in
// trash entries.
const trashSep = '_'

// FormatTrashName builds the on-disk trash entry name for an original
// name deleted at the given time: "<unix-epoch-seconds>_<name>".
func FormatTrashName(now time.Time, name string) string {
	return fmt.Sprintf("%d%c%s", now.Unix(), trashSep, name)
}

// SplitTrashName parses a trash entry name into its deletion time and the
// original name. The prefix is parsed by delimiter rather than by a fixed
// character count, so it stays correct whatever the epoch width. ok is
// false when the name does not carry a valid prefix, in which case name
// is returned unchanged.
func SplitTrashName(trashName string) (deleted time.Time, name string, ok bool) {
	i := strings.IndexByte(trashName, trashSep)
	if i <= 0 {
		return time.Time{}, trashName, false
	}
	secs, err := strconv.ParseInt(trashName[:i], 10, 64)
	if err != nil {
		return time.Time{}, trashName, false
	}
	return time.Unix(secs, 0), trashName[i+1:], true
}

// InTrash reports whether the item currently lives directly inside the
// given trash directory.
func (it Item) InTrash(trashDir string) bool {
	return trashDir != "" && filepath.Dir(it.Path) == trashDir
}

// RestoredName returns the name the item should restore under: the
// original name with the trash prefix stripped when the item lives in
// the trash directory, the plain name otherwise.
func (it Item) RestoredName(trashDir string) string {
	if !it.InTrash(trashDir) {
		return it.Name
	}
	_, name, _ := SplitTrashName(it.Name)
	return name
}
