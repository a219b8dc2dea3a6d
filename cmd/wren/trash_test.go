package main

import (
	"path/filepath"
	"testing"
)

func TestTrashListMissingTrashDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("WREN_TRASH_DIR", filepath.Join(home, "never-created"))

	// A trash directory that does not exist yet reads as empty, not as
	// a listing failure.
	if err := runTrashList(trashListCmd, nil); err != nil {
		t.Fatalf("trash list on a missing trash dir should succeed, got %v", err)
	}
}

func TestTrashEmptyMissingTrashDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("WREN_TRASH_DIR", filepath.Join(home, "never-created"))

	if err := runTrashEmpty(trashEmptyCmd, nil); err != nil {
		t.Fatalf("trash empty on a missing trash dir should succeed, got %v", err)
	}
}
