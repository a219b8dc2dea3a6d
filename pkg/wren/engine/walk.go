package engine

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"unicode/utf8"

	"github.com/charlievieth/fastwalk"

	"github.com/wrenfm/wren/pkg/wren/types"
)

// countEntries sizes a subtree for progress reporting. The count is best
// effort: unreadable entries are skipped, and the root itself is always
// counted so the total is at least one.
func countEntries(root string) int {
	var n atomic.Int64
	conf := fastwalk.Config{Follow: false}
	_ = fastwalk.Walk(&conf, root, func(_ string, _ fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		n.Add(1)
		return nil
	})
	if n.Load() < 1 {
		return 1
	}
	return int(n.Load())
}

// copyTree mirrors the subtree rooted at src under dstRoot, preserving
// relative structure. dstRoot itself is created first. Any failure
// aborts the walk before src is touched; entries already copied stay.
func (e *Engine) copyTree(src, dstRoot string) error {
	if err := os.Mkdir(dstRoot, 0o755); err != nil {
		return &types.CopyError{Path: dstRoot, Err: err}
	}

	total := countEntries(src)
	index := 0

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &types.CopyError{Path: path, Err: err}
		}

		index++
		e.report.Report(index, total)

		if path == src {
			return nil
		}
		if !utf8.ValidString(d.Name()) {
			return types.ErrBadName
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return &types.CopyError{Path: path, Err: err}
		}
		target := filepath.Join(dstRoot, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &types.CopyError{Path: target, Err: err}
			}
			return nil
		}

		// Parents may be missing when an earlier directory entry was
		// skipped; create them lazily.
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return &types.CopyError{Path: target, Err: err}
		}
		if err := copyFile(path, target); err != nil {
			return &types.CopyError{Path: path, Err: err}
		}
		return nil
	})
}

// copyFile copies file content from src to dst, following symlinks and
// preserving the source mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if meta, err := in.Stat(); err == nil {
		mode = meta.Mode().Perm()
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
