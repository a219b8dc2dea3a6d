package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/wrenfm/wren/pkg/wren/history"
	"github.com/wrenfm/wren/pkg/wren/types"
)

// current returns the item under the cursor.
func (m *Model) current() (types.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return types.Item{}, false
	}
	return m.items[m.cursor], true
}

// targets returns the multi-selected items in listing order, or the
// cursor item when nothing is selected.
func (m *Model) targets() []types.Item {
	var out []types.Item
	for _, item := range m.items {
		if m.selected[item.Path] {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		if item, ok := m.current(); ok {
			out = append(out, item)
		}
	}
	return out
}

// yank copies the targets to the clipboard.
func (m *Model) yank() {
	targets := m.targets()
	if len(targets) == 0 {
		return
	}
	m.eng.Yank(targets)
	m.selected = make(map[string]bool)
	m.status = fmt.Sprintf("yanked %d item(s)", len(targets))
}

// deleteTargets trashes the targets and journals the batch.
func (m *Model) deleteTargets() {
	targets := m.targets()
	if len(targets) == 0 {
		return
	}

	trashPaths, err := m.eng.DeleteAndYank(targets, m.dir, true)
	if err != nil {
		m.errMsg = err.Error()
		m.refresh()
		return
	}

	names := make([]string, len(targets))
	var totalBytes int64
	for i, item := range targets {
		names[i] = item.Name
		totalBytes += item.Size
	}
	if _, err := m.journal.Append(m.dir, trashPaths, names, totalBytes); err != nil {
		m.logger.Warn("manifest append failed", "error", err)
	}

	m.selected = make(map[string]bool)
	m.status = fmt.Sprintf("deleted %d item(s)", len(targets))
	m.refresh()
}

// paste puts the clipboard into the displayed directory.
func (m *Model) paste() {
	clipboard := m.eng.Clipboard()
	if len(clipboard) == 0 {
		m.status = "clipboard is empty"
		return
	}

	put, err := m.eng.Paste(clipboard, m.dir, m.items)
	if err != nil {
		m.errMsg = err.Error()
		m.refresh()
		return
	}
	m.status = fmt.Sprintf("pasted %d item(s)", len(put))
	m.refresh()
}

// beginRename opens the rename prompt prefilled with the current name.
func (m Model) beginRename() (tea.Model, tea.Cmd) {
	item, ok := m.current()
	if !ok {
		return m, nil
	}
	m.mode = modeRename
	m.target = item
	m.rename.SetValue(item.Name)
	m.rename.CursorEnd()
	return m, m.rename.Focus()
}

// finishRename applies the pending rename.
func (m *Model) finishRename() {
	newName := strings.TrimSpace(m.rename.Value())
	if newName == "" || newName == m.target.Name {
		return
	}

	to := filepath.Join(m.dir, newName)
	if err := m.eng.Rename(m.target.Path, to, true); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.status = fmt.Sprintf("renamed to %s", newName)
	m.refresh()
}

// undo inverts the most recent manipulation.
func (m *Model) undo() {
	rec, err := m.eng.Undo()
	if err != nil {
		if errors.Is(err, types.ErrNothingToUndo) {
			m.status = err.Error()
		} else {
			m.errMsg = err.Error()
		}
		m.refresh()
		return
	}
	m.status = "undid " + describeRecord(rec)
	m.refresh()
}

// redo re-applies the most recently undone manipulation.
func (m *Model) redo() {
	rec, err := m.eng.Redo()
	if err != nil {
		if errors.Is(err, types.ErrNothingToRedo) {
			m.status = err.Error()
		} else {
			m.errMsg = err.Error()
		}
		m.refresh()
		return
	}
	m.status = "redid " + describeRecord(rec)
	m.refresh()
}

// describeRecord names a record for the status line.
func describeRecord(rec history.Record) string {
	switch r := rec.(type) {
	case *history.DeleteRecord:
		return fmt.Sprintf("delete of %d item(s)", len(r.Original))
	case *history.PutRecord:
		return fmt.Sprintf("paste of %d item(s)", len(r.Original))
	case *history.RenameRecord:
		return fmt.Sprintf("rename of %s", filepath.Base(r.From))
	default:
		return "manipulation"
	}
}

// moveCursor shifts the cursor by delta, clamped to the listing.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.clampScroll()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// clampScroll keeps the cursor row inside the visible window.
func (m *Model) clampScroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows is the number of listing rows that fit on screen, leaving
// room for the header and the status line.
func (m *Model) visibleRows() int {
	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// parentDir returns the parent of dir, or dir itself at the root.
func parentDir(dir string) string {
	parent := filepath.Dir(dir)
	if parent == dir {
		return dir
	}
	return parent
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.dir))
	b.WriteString("\n")

	rows := m.visibleRows()
	end := m.offset + rows
	if end > len(m.items) {
		end = len(m.items)
	}

	if len(m.items) == 0 {
		b.WriteString(statusStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return b.String()
}

// renderRow renders one listing row. The cursor row gets a pointer
// prefix but keeps the same mark, styling, and timestamp as every other
// row.
func (m Model) renderRow(i int) string {
	item := m.items[i]

	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}

	mark := " "
	if m.selected[item.Path] {
		mark = markStyle.Render("*")
	}

	name := item.Name
	switch {
	case item.Kind == types.KindDirectory:
		name = dirStyle.Render(name + "/")
	case item.Kind == types.KindSymlink:
		if item.SymlinkDir != "" {
			name = symlinkStyle.Render(name + " -> " + item.SymlinkDir)
		} else {
			name = symlinkStyle.Render(name)
		}
	case item.Hidden:
		name = hiddenStyle.Render(name)
	default:
		name = fileStyle.Render(name)
	}

	when := ""
	if item.Modified != nil {
		when = timeStyle.Render("  " + item.Modified.Format("2006-01-02 15:04"))
	}

	return pointer + mark + name + when
}

// renderStatus renders the bottom status line or the rename prompt.
func (m Model) renderStatus() string {
	if m.mode == modeRename {
		return "rename: " + m.rename.View()
	}
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}

	var parts []string
	if len(m.items) > 0 {
		item := m.items[m.cursor]
		parts = append(parts, fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.items)))
		if item.Ext != "" {
			parts = append(parts, item.Ext)
		}
		parts = append(parts, humanize.IBytes(uint64(item.Size)))
	}
	if n := len(m.eng.Clipboard()); n > 0 {
		parts = append(parts, fmt.Sprintf("clipboard:%d", n))
	}
	if u := m.eng.Log().Undoable(); u > 0 {
		parts = append(parts, fmt.Sprintf("undo:%d", u))
	}
	if r := m.eng.Log().Redoable(); r > 0 {
		parts = append(parts, fmt.Sprintf("redo:%d", r))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}
