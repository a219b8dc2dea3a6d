package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenfm/wren/pkg/wren/engine"
	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/manifest"
	"github.com/wrenfm/wren/pkg/wren/opener"
	"github.com/wrenfm/wren/pkg/wren/snapshot"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"alpha.txt", "beta.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}

	eng, err := engine.New(filepath.Join(t.TempDir(), "trash"), &history.Log{})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	journal, err := manifest.New(filepath.Join(t.TempDir(), "manifest.jsonl"))
	if err != nil {
		t.Fatalf("manifest.New() error = %v", err)
	}

	m, err := NewModel(Options{
		Root:    root,
		Engine:  eng,
		Opener:  opener.New(nil, "true"),
		Journal: journal,
		SortBy:  snapshot.SortName,
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	t.Cleanup(func() {
		if m.watch != nil {
			_ = m.watch.Close()
		}
	})
	return m, root
}

func keyPress(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModelListsDirsFirst(t *testing.T) {
	m, _ := newTestModel(t)

	if len(m.items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(m.items))
	}
	if m.items[0].Name != "docs" {
		t.Errorf("expected docs first, got %s", m.items[0].Name)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", m.cursor)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	m, _ := newTestModel(t)

	m = keyPress(m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m = keyPress(m, "j")
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.items)-1)
	}

	m = keyPress(m, "g")
	if m.cursor != 0 {
		t.Errorf("g should jump to top, cursor = %d", m.cursor)
	}
	m = keyPress(m, "G")
	if m.cursor != len(m.items)-1 {
		t.Errorf("G should jump to bottom, cursor = %d", m.cursor)
	}
}

func TestSelectionToggleAndClear(t *testing.T) {
	m, _ := newTestModel(t)

	first := m.items[0].Path
	m = keyPress(m, " ")
	if !m.selected[first] {
		t.Error("space should select the cursor item")
	}
	if m.cursor != 1 {
		t.Errorf("space should advance the cursor, got %d", m.cursor)
	}

	m = keyPress(m, "esc")
	if len(m.selected) != 0 {
		t.Error("esc should clear the selection")
	}
}

func TestDeleteAndUndoRoundTrip(t *testing.T) {
	m, root := newTestModel(t)

	// Move past docs/ onto alpha.txt and delete it.
	m = keyPress(m, "j")
	if m.items[m.cursor].Name != "alpha.txt" {
		t.Fatalf("cursor on %s, want alpha.txt", m.items[m.cursor].Name)
	}
	m = keyPress(m, "d")

	if _, err := os.Stat(filepath.Join(root, "alpha.txt")); !os.IsNotExist(err) {
		t.Fatal("alpha.txt should be trashed")
	}
	if len(m.items) != 2 {
		t.Errorf("listing should have 2 items after delete, got %d", len(m.items))
	}
	if m.eng.Log().Undoable() != 1 {
		t.Errorf("Undoable() = %d, want 1", m.eng.Log().Undoable())
	}

	m = keyPress(m, "u")
	if _, err := os.Stat(filepath.Join(root, "alpha.txt")); err != nil {
		t.Errorf("undo should restore alpha.txt: %v", err)
	}
	if !strings.Contains(m.status, "undid") {
		t.Errorf("status = %q, want undo confirmation", m.status)
	}
}

func TestDeleteThenPaste(t *testing.T) {
	m, root := newTestModel(t)

	m = keyPress(m, "j")
	m = keyPress(m, "d")

	// Descend into docs/ and paste the trashed file there.
	m = keyPress(m, "g")
	m = keyPress(m, "enter")
	if m.dir != filepath.Join(root, "docs") {
		t.Fatalf("enter should descend into docs, dir = %s", m.dir)
	}

	m = keyPress(m, "p")
	if _, err := os.Stat(filepath.Join(root, "docs", "alpha.txt")); err != nil {
		t.Errorf("paste should place alpha.txt in docs: %v", err)
	}
}

func TestUndoOnEmptyLogSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)

	m = keyPress(m, "u")
	if m.errMsg != "" {
		t.Errorf("empty undo is not an error, errMsg = %q", m.errMsg)
	}
	if m.status == "" {
		t.Error("empty undo should set a status message")
	}
}

func TestRenameFlow(t *testing.T) {
	m, root := newTestModel(t)

	m = keyPress(m, "j")
	m = keyPress(m, "r")
	if m.mode != modeRename {
		t.Fatal("r should enter rename mode")
	}

	m.rename.SetValue("renamed.txt")
	m = keyPress(m, "enter")

	if m.mode != modeBrowse {
		t.Error("enter should leave rename mode")
	}
	if _, err := os.Stat(filepath.Join(root, "renamed.txt")); err != nil {
		t.Errorf("rename should produce renamed.txt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "alpha.txt")); !os.IsNotExist(err) {
		t.Error("alpha.txt should be gone after rename")
	}
}

func TestRenameEscCancels(t *testing.T) {
	m, root := newTestModel(t)

	m = keyPress(m, "j")
	m = keyPress(m, "r")
	m.rename.SetValue("other.txt")
	m = keyPress(m, "esc")

	if m.mode != modeBrowse {
		t.Error("esc should leave rename mode")
	}
	if _, err := os.Stat(filepath.Join(root, "alpha.txt")); err != nil {
		t.Error("esc should not apply the rename")
	}
}

func TestHiddenToggle(t *testing.T) {
	m, root := newTestModel(t)

	if err := os.WriteFile(filepath.Join(root, ".secret"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	m = keyPress(m, ".")
	if !m.ShowHidden() {
		t.Error("dot should enable hidden files")
	}
	found := false
	for _, item := range m.items {
		if item.Name == ".secret" {
			found = true
		}
	}
	if !found {
		t.Error(".secret should appear after toggling hidden")
	}

	m = keyPress(m, ".")
	if m.ShowHidden() {
		t.Error("dot should toggle hidden files back off")
	}
}

func TestSortToggle(t *testing.T) {
	m, _ := newTestModel(t)

	if m.SortBy() != snapshot.SortName {
		t.Fatalf("initial sort = %v", m.SortBy())
	}
	m = keyPress(m, "s")
	if m.SortBy() != snapshot.SortTime {
		t.Error("s should switch to time sort")
	}
	m = keyPress(m, "s")
	if m.SortBy() != snapshot.SortName {
		t.Error("s should switch back to name sort")
	}
}

func TestNavigateParentFromRootStays(t *testing.T) {
	if parentDir("/") != "/" {
		t.Errorf("parentDir(/) = %q", parentDir("/"))
	}
	if parentDir("/a/b") != "/a" {
		t.Errorf("parentDir(/a/b) = %q", parentDir("/a/b"))
	}
}

func TestViewRendersHeaderAndStatus(t *testing.T) {
	m, root := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, root) {
		t.Error("view should include the directory header")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should include the position indicator")
	}
}

// cursorLine returns the rendered row carrying the cursor pointer.
func cursorLine(t *testing.T, m Model) string {
	t.Helper()
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "> ") {
			return line
		}
	}
	t.Fatal("no cursor row in view")
	return ""
}

func TestViewCursorRowKeepsRowContent(t *testing.T) {
	m, _ := newTestModel(t)

	// The cursor row keeps the directory styling and timestamp.
	line := cursorLine(t, m)
	if !strings.Contains(line, "docs/") {
		t.Errorf("cursor row lost the styled name: %q", line)
	}
	if !strings.Contains(line, ":") {
		t.Errorf("cursor row lost the timestamp: %q", line)
	}

	// Select the row under the cursor, move back onto it: the mark and
	// the pointer render together.
	m = keyPress(m, " ")
	m = keyPress(m, "g")
	line = cursorLine(t, m)
	if !strings.Contains(line, "*") {
		t.Errorf("cursor row lost the selection mark: %q", line)
	}
	if !strings.Contains(line, "docs/") {
		t.Errorf("selected cursor row lost the styled name: %q", line)
	}
}

func TestWindowResizeClampsScroll(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 4})
	m = next.(Model)
	if m.width != 40 || m.height != 4 {
		t.Errorf("size = %dx%d, want 40x4", m.width, m.height)
	}
	if m.visibleRows() != 1 {
		t.Errorf("visibleRows() = %d, want 1", m.visibleRows())
	}
}
