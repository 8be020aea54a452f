package tree

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/tui/style"
)

// Controller applies the browser's commands to the task graph.
// Each method returns a short status message for the footer.
type Controller interface {
	Source
	CycleStatus(id engine.TaskID) (string, error)
	ToggleDone(id engine.TaskID) (string, error)
	ToggleWorking(id engine.TaskID) (string, error)
	CyclePriority(id engine.TaskID) (string, error)
	ToggleHidden(id engine.TaskID) (string, error)
	Undo() (string, error)
	Redo() (string, error)
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Cycle      key.Binding
	Done       key.Binding
	Work       key.Binding
	Priority   key.Binding
	Hide       key.Binding
	ShowHidden key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Cycle, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Cycle, k.Done, k.Work, k.Priority},
		{k.Hide, k.ShowHidden},
		{k.Undo, k.Redo},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Cycle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "cycle status")),
		Done:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle done")),
		Work:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle working")),
		Priority:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Hide:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide/unhide")),
		ShowHidden: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show hidden")),
		Undo:       key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:       key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the interactive task browser
type Model struct {
	ctrl       Controller
	renderer   *TaskTreeRenderer
	keys       keyMap
	help       help.Model
	lines      []Line
	cursor     int
	showHidden bool
	status     string
	statusErr  bool
	Width      int
	Height     int
}

// NewModel creates a browser over ctrl
func NewModel(ctrl Controller) Model {
	m := Model{
		ctrl:     ctrl,
		renderer: NewTaskTreeRenderer(ctrl),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.refresh(engine.NoTask)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the task under the cursor, or engine.NoTask for an empty graph
func (m Model) Selected() engine.TaskID {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return engine.NoTask
	}
	return m.lines[m.cursor].ID
}

// Status returns the footer message from the last command
func (m Model) Status() string {
	return m.status
}

// refresh re-renders and keeps the cursor on keep when it is still visible
func (m *Model) refresh(keep engine.TaskID) {
	m.lines = m.renderer.Lines(engine.NoTask, RenderOptions{ShowHidden: m.showHidden})
	for i, l := range m.lines {
		if l.ID == keep {
			m.cursor = i
			return
		}
	}
	m.cursor = min(m.cursor, max(len(m.lines)-1, 0))
}

func (m *Model) apply(fn func() (string, error)) {
	selected := m.Selected()
	msg, err := fn()
	if err != nil {
		m.status, m.statusErr = err.Error(), true
	} else {
		m.status, m.statusErr = msg, false
	}
	m.refresh(selected)
}

func (m *Model) applyToSelected(fn func(engine.TaskID) (string, error)) {
	id := m.Selected()
	if id == engine.NoTask {
		return
	}
	m.apply(func() (string, error) { return fn(id) })
}

// Update updates the model based on the message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Cycle):
			m.applyToSelected(m.ctrl.CycleStatus)
		case key.Matches(msg, m.keys.Done):
			m.applyToSelected(m.ctrl.ToggleDone)
		case key.Matches(msg, m.keys.Work):
			m.applyToSelected(m.ctrl.ToggleWorking)
		case key.Matches(msg, m.keys.Priority):
			m.applyToSelected(m.ctrl.CyclePriority)
		case key.Matches(msg, m.keys.Hide):
			m.applyToSelected(m.ctrl.ToggleHidden)
		case key.Matches(msg, m.keys.ShowHidden):
			m.showHidden = !m.showHidden
			m.refresh(m.Selected())
		case key.Matches(msg, m.keys.Undo):
			m.apply(m.ctrl.Undo)
		case key.Matches(msg, m.keys.Redo):
			m.apply(m.ctrl.Redo)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View returns the string representation of the model.
func (m Model) View() string {
	var b strings.Builder
	if len(m.lines) == 0 {
		b.WriteString(style.ColorDim("No tasks yet. Add one with `taskmap add <title>`."))
	}
	for i, l := range m.visibleRange() {
		if i > 0 {
			b.WriteString("\n")
		}
		text := m.lines[l].Text
		if l == m.cursor {
			text = style.Selected(text)
		}
		b.WriteString(text)
	}

	footer := lipgloss.NewStyle().MarginTop(1)
	if m.status != "" {
		status := m.status
		if m.statusErr {
			status = style.ColorRed(status)
		}
		b.WriteString("\n" + footer.Render(status))
	}
	b.WriteString("\n" + footer.Render(m.help.View(m.keys)))
	return b.String()
}

// visibleRange returns the line indexes that fit the window, keeping the cursor in view
func (m Model) visibleRange() []int {
	rows := len(m.lines)
	if m.Height > 0 {
		// leave room for the status line and help footer
		rows = min(rows, max(m.Height-4, 1))
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	indexes := make([]int, 0, rows)
	for i := start; i < start+rows && i < len(m.lines); i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

