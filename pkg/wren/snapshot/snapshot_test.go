package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfm/wren/pkg/wren/types"
)

// writeFile creates a file with throwaway content.
func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestList_DirectoriesFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "aaa.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zzz"), 0o755))

	items, err := List(dir, SortName, true)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "zzz", items[0].Name)
	assert.Equal(t, types.KindDirectory, items[0].Kind)
	assert.Equal(t, "aaa.txt", items[1].Name)
	assert.Equal(t, types.KindFile, items[1].Kind)
}

func TestList_NaturalNameOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"file10.txt", "file2.txt", "file1.txt"} {
		writeFile(t, filepath.Join(dir, name))
	}

	items, err := List(dir, SortName, true)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "file1.txt", items[0].Name)
	assert.Equal(t, "file2.txt", items[1].Name)
	assert.Equal(t, "file10.txt", items[2].Name)
}

func TestList_Deterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "c.txt"} {
		writeFile(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	first, err := List(dir, SortName, true)
	require.NoError(t, err)
	second, err := List(dir, SortName, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestList_TimeOrderNewestFirst(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "older.txt")
	newer := filepath.Join(dir, "newer.txt")
	writeFile(t, older)
	writeFile(t, newer)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	items, err := List(dir, SortTime, true)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "newer.txt", items[0].Name)
	assert.Equal(t, "older.txt", items[1].Name)
}

func TestList_HiddenFilteredAfterSorting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden"))
	writeFile(t, filepath.Join(dir, "visible.txt"))

	all, err := List(dir, SortName, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].Hidden)

	visible, err := List(dir, SortName, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "visible.txt", visible[0].Name)
}

func TestList_SymlinkToDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	items, err := List(dir, SortName, true)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var linkItem types.Item
	for _, item := range items {
		if item.Name == "link" {
			linkItem = item
		}
	}
	assert.Equal(t, types.KindSymlink, linkItem.Kind)
	assert.NotEmpty(t, linkItem.SymlinkDir)
	assert.True(t, linkItem.IsDir())
}

func TestList_BrokenSymlinkDegrades(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

	items, err := List(dir, SortName, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, types.KindSymlink, items[0].Kind)
	assert.Empty(t, items[0].SymlinkDir)
}

func TestList_UnreadableDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), SortName, true)
	assert.Error(t, err)
}

func TestList_ItemMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Notes.TXT")
	writeFile(t, path)

	items, err := List(dir, SortName, true)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Notes.TXT", item.Name)
	assert.Equal(t, path, item.Path)
	assert.Equal(t, "txt", item.Ext)
	assert.Equal(t, int64(7), item.Size)
	assert.NotNil(t, item.Modified)
	assert.False(t, item.Hidden)
}

func TestSortItems_NilModifiedSortsLast(t *testing.T) {
	now := time.Now()
	items := []types.Item{
		{Name: "degraded"},
		{Name: "fresh", Modified: &now},
	}
	sortItems(items, SortTime)

	assert.Equal(t, "fresh", items[0].Name)
	assert.Equal(t, "degraded", items[1].Name)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortTime, ParseSortKey("time"))
	assert.Equal(t, SortTime, ParseSortKey("Time"))
	assert.Equal(t, SortName, ParseSortKey("name"))
	assert.Equal(t, SortName, ParseSortKey("bogus"))
	assert.Equal(t, SortName, ParseSortKey(""))
}
