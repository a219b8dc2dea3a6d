// Package snapshot builds ordered directory listings for the wren file
// manager. A listing is a fresh value every time: it is never mutated in
// place, only replaced wholesale after a filesystem-affecting operation.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/wrenfm/wren/pkg/wren/types"
)

// SortKey selects the ordering applied within each partition of a
// listing.
type SortKey string

// Supported sort keys.
const (
	SortName SortKey = "name"
	SortTime SortKey = "time"
)

// ParseSortKey parses a sort key string, defaulting to SortName for
// anything unrecognized.
func ParseSortKey(s string) SortKey {
	if SortKey(strings.ToLower(s)) == SortTime {
		return SortTime
	}
	return SortName
}

// List enumerates the direct children of path and returns them as an
// ordered slice of items: directories first, then files and symlinks,
// each partition sorted by key. Hidden entries are dropped after sorting
// when showHidden is false, preserving the relative order of the rest.
//
// Per-entry metadata failures degrade the item (zero size, nil modified
// time, file kind) instead of failing the listing; only an unreadable
// directory itself returns an error.
func List(path string, key SortKey, showHidden bool) ([]types.Item, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", path, err)
	}

	var dirs, files []types.Item
	for _, entry := range entries {
		item := makeItem(filepath.Join(path, entry.Name()), entry.Name())
		if item.Kind == types.KindDirectory {
			dirs = append(dirs, item)
		} else {
			files = append(files, item)
		}
	}

	sortItems(dirs, key)
	sortItems(files, key)

	result := make([]types.Item, 0, len(dirs)+len(files))
	result = append(result, dirs...)
	result = append(result, files...)

	if !showHidden {
		visible := result[:0]
		for _, item := range result {
			if !item.Hidden {
				visible = append(visible, item)
			}
		}
		result = visible
	}

	return result, nil
}

// makeItem snapshots a single entry. A failed lstat yields a degraded
// item rather than an error so one unreadable entry cannot poison the
// whole listing.
func makeItem(path, name string) types.Item {
	item := types.Item{
		Kind:   types.KindFile,
		Name:   name,
		Path:   path,
		Ext:    extension(name),
		Hidden: strings.HasPrefix(name, "."),
	}

	meta, err := os.Lstat(path)
	if err != nil {
		return item
	}

	mod := meta.ModTime()
	item.Modified = &mod
	item.Size = meta.Size()

	switch {
	case meta.IsDir():
		item.Kind = types.KindDirectory
	case meta.Mode()&os.ModeSymlink != 0:
		item.Kind = types.KindSymlink
		// Classify by the resolved target so directory symlinks can be
		// entered like directories.
		if target, err := os.Stat(path); err == nil && target.IsDir() {
			if resolved, err := filepath.EvalSymlinks(path); err == nil {
				item.SymlinkDir = resolved
			}
		}
	}

	return item
}

// extension returns the lower-cased extension of name without the dot.
func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// sortItems orders items in place by the given key.
func sortItems(items []types.Item, key SortKey) {
	switch key {
	case SortTime:
		// Newest first; items with no modified time sort after any item
		// that has one so the comparison is total.
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].Modified, items[j].Modified
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return natural.Less(items[i].Name, items[j].Name)
		})
	}
}
