package tui

import (
	"os/exec"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenfm/wren/pkg/wren/engine"
	"github.com/wrenfm/wren/pkg/wren/logging"
	"github.com/wrenfm/wren/pkg/wren/manifest"
	"github.com/wrenfm/wren/pkg/wren/opener"
	"github.com/wrenfm/wren/pkg/wren/snapshot"
	"github.com/wrenfm/wren/pkg/wren/types"
	"github.com/wrenfm/wren/pkg/wren/watcher"
)

// mode is the input mode of the browser.
type mode int

const (
	modeBrowse mode = iota
	modeRename
)

// Options configures the TUI.
type Options struct {
	Root       string
	Engine     *engine.Engine
	Opener     *opener.Opener
	Journal    *manifest.Journal
	SortBy     snapshot.SortKey
	ShowHidden bool
}

// dirChangedMsg reports that the watched directory changed on disk.
type dirChangedMsg string

// openDoneMsg reports that an external opener process finished.
type openDoneMsg struct{ err error }

// Model is the main Bubble Tea model: the interactive loop that drives
// the manipulation engine.
type Model struct {
	dir   string
	items []types.Item

	cursor int
	offset int

	// selected is keyed by item path, not index: items are immutable
	// snapshots and the set survives re-listing.
	selected map[string]bool

	sortBy     snapshot.SortKey
	showHidden bool

	mode   mode
	rename textinput.Model
	target types.Item // item being renamed

	eng     *engine.Engine
	open    *opener.Opener
	journal *manifest.Journal
	watch   *watcher.Watcher
	logger  *logging.Logger

	status string
	errMsg string

	width  int
	height int
}

// NewModel creates the browser model rooted at opts.Root.
func NewModel(opts Options) (Model, error) {
	items, err := snapshot.List(opts.Root, opts.SortBy, opts.ShowHidden)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.CharLimit = 255

	m := Model{
		dir:        opts.Root,
		items:      items,
		selected:   make(map[string]bool),
		sortBy:     opts.SortBy,
		showHidden: opts.ShowHidden,
		rename:     input,
		eng:        opts.Engine,
		open:       opts.Opener,
		journal:    opts.Journal,
		logger:     logging.Get("tui"),
		width:      80,
		height:     24,
	}

	if w, err := watcher.New(); err == nil {
		m.watch = w
		if err := w.Target(opts.Root); err != nil {
			m.logger.Warn("cannot watch directory", "path", opts.Root, "error", err)
		}
	} else {
		m.logger.Warn("filesystem watcher unavailable", "error", err)
	}

	return m, nil
}

// SortBy returns the current sort key, for session persistence.
func (m Model) SortBy() snapshot.SortKey { return m.sortBy }

// ShowHidden returns the hidden-file visibility, for session persistence.
func (m Model) ShowHidden() bool { return m.showHidden }

// Init starts the watcher subscription.
func (m Model) Init() tea.Cmd {
	return m.listenForChanges()
}

// listenForChanges waits for the next directory-changed signal.
func (m Model) listenForChanges() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return func() tea.Msg {
		dir, ok := <-m.watch.Changed()
		if !ok {
			return nil
		}
		return dirChangedMsg(dir)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case dirChangedMsg:
		if string(msg) == m.dir {
			m.refresh()
		}
		return m, m.listenForChanges()

	case openDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeRename {
			return m.updateRename(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

// updateBrowse handles keys in browse mode.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		if m.watch != nil {
			_ = m.watch.Close()
		}
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.cursor = 0
		m.offset = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
		m.clampCursor()
		m.clampScroll()
	case "pgup":
		m.moveCursor(-m.visibleRows())
	case "pgdown":
		m.moveCursor(m.visibleRows())

	case "enter", "l", "right":
		return m.enter()

	case "h", "left", "backspace":
		m.navigate(parentDir(m.dir))

	case " ":
		if item, ok := m.current(); ok {
			m.selected[item.Path] = !m.selected[item.Path]
			m.moveCursor(1)
		}

	case "esc":
		m.selected = make(map[string]bool)

	case "y":
		m.yank()
	case "d":
		m.deleteTargets()
	case "p":
		m.paste()
	case "r":
		return m.beginRename()
	case "u":
		m.undo()
	case "ctrl+r":
		m.redo()

	case ".":
		m.showHidden = !m.showHidden
		m.refresh()
	case "s":
		if m.sortBy == snapshot.SortName {
			m.sortBy = snapshot.SortTime
		} else {
			m.sortBy = snapshot.SortName
		}
		m.refresh()
	}

	return m, nil
}

// updateRename handles keys while the rename prompt is open.
func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.rename.Blur()
		return m, nil

	case "enter":
		m.mode = modeBrowse
		m.rename.Blur()
		m.finishRename()
		return m, nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

// enter descends into a directory or opens a file.
func (m Model) enter() (tea.Model, tea.Cmd) {
	item, ok := m.current()
	if !ok {
		return m, nil
	}

	if item.IsDir() {
		target := item.Path
		if item.Kind == types.KindSymlink {
			target = item.SymlinkDir
		}
		m.navigate(target)
		return m, nil
	}

	command := m.open.Command(item)
	return m, tea.ExecProcess(exec.Command(command, item.Path), func(err error) tea.Msg {
		return openDoneMsg{err: err}
	})
}

// navigate switches the displayed directory.
func (m *Model) navigate(dir string) {
	items, err := snapshot.List(dir, m.sortBy, m.showHidden)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.dir = dir
	m.items = items
	m.cursor = 0
	m.offset = 0
	m.selected = make(map[string]bool)
	if m.watch != nil {
		if err := m.watch.Target(dir); err != nil {
			m.logger.Warn("cannot watch directory", "path", dir, "error", err)
		}
	}
}

// refresh re-lists the displayed directory, pruning stale selections.
func (m *Model) refresh() {
	items, err := snapshot.List(m.dir, m.sortBy, m.showHidden)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.items = items

	live := make(map[string]bool, len(m.selected))
	for _, item := range items {
		if m.selected[item.Path] {
			live[item.Path] = true
		}
	}
	m.selected = live
	m.clampCursor()
	m.clampScroll()
}
