// Package tree renders task trees for the terminal.
package tree

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/tui/style"
)

const (
	// IdleSymbol marks a pending task nobody is working on
	IdleSymbol = "○"
	// WorkingSymbol marks the task currently being worked on
	WorkingSymbol = "◉"
	// DoneSymbol marks a finished task
	DoneSymbol = "✓"
)

// Source is the read side of the task graph the renderer walks
type Source interface {
	FindByID(id engine.TaskID) (engine.Task, bool)
	Roots() []engine.TaskID
}

// RenderOptions configures rendering behavior
type RenderOptions struct {
	// ShowHidden renders hidden tasks and their subtrees instead of collapsing them
	ShowHidden bool
	// Plain disables colors
	Plain bool
}

// Line is one rendered task
type Line struct {
	ID    engine.TaskID
	Depth int
	Text  string
}

// TaskTreeRenderer renders the main-parent forest with status and relationship annotations
type TaskTreeRenderer struct {
	source Source
}

// NewTaskTreeRenderer creates a renderer over source
func NewTaskTreeRenderer(source Source) *TaskTreeRenderer {
	return &TaskTreeRenderer{source: source}
}

// StatusSymbol returns the icon for a work state
func StatusSymbol(state engine.WorkState) string {
	switch state {
	case engine.WorkWorking:
		return WorkingSymbol
	case engine.WorkDone:
		return DoneSymbol
	default:
		return IdleSymbol
	}
}

// PriorityMarker returns the suffix shown after a task title
func PriorityMarker(p engine.Priority) string {
	switch p {
	case engine.PriorityMedium:
		return "!"
	case engine.PriorityHigh:
		return "!!"
	default:
		return ""
	}
}

// Render renders the tree below start, or every root tree when start is engine.NoTask
func (r *TaskTreeRenderer) Render(start engine.TaskID, opts RenderOptions) string {
	lines := r.Lines(start, opts)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// Lines renders one line per visible task in depth-first order
func (r *TaskTreeRenderer) Lines(start engine.TaskID, opts RenderOptions) []Line {
	starts := []engine.TaskID{start}
	if start == engine.NoTask {
		starts = r.source.Roots()
	}

	var lines []Line
	for i, id := range starts {
		task, ok := r.source.FindByID(id)
		if !ok || (task.Hidden && !opts.ShowHidden && start == engine.NoTask) {
			continue
		}
		w := walker{r: r, opts: opts, color: i}
		w.visit(task, 0, "", "", &lines)
	}
	return lines
}

type walker struct {
	r     *TaskTreeRenderer
	opts  RenderOptions
	color int
}

func (w walker) visit(task engine.Task, depth int, prefix, connector string, lines *[]Line) {
	visible, hidden := w.partition(task.Children)

	text := w.paint(prefix+connector, style.ColorRoot) + w.describe(task, hidden)
	*lines = append(*lines, Line{ID: task.ID, Depth: depth, Text: text})

	childPrefix := prefix
	switch connector {
	case "├── ":
		childPrefix += "│   "
	case "└── ":
		childPrefix += "    "
	}
	for i, child := range visible {
		next := "├── "
		if i == len(visible)-1 {
			next = "└── "
		}
		w.visit(child, depth+1, childPrefix, next, lines)
	}
}

// partition resolves children and splits off hidden ones unless they are shown
func (w walker) partition(ids []engine.TaskID) (visible []engine.Task, hidden int) {
	for _, id := range ids {
		child, ok := w.r.source.FindByID(id)
		if !ok {
			continue
		}
		if child.Hidden && !w.opts.ShowHidden {
			hidden++
			continue
		}
		visible = append(visible, child)
	}
	return visible, hidden
}

func (w walker) describe(task engine.Task, hiddenChildren int) string {
	state := task.WorkState()
	head := fmt.Sprintf("%s #%d %s", StatusSymbol(state), task.ID, task.Title)
	switch state {
	case engine.WorkWorking:
		head = w.style(head, style.ColorWorking)
	case engine.WorkDone:
		head = w.style(head, style.ColorDone)
	}

	parts := []string{head}
	if marker := PriorityMarker(task.Priority); marker != "" {
		parts = append(parts, w.style(marker, style.ColorRed))
	}
	if pending := w.pendingPrerequisites(task); len(pending) > 0 {
		parts = append(parts, w.style("needs "+joinIDs(pending), style.ColorYellow))
	}
	if len(task.OtherParents) > 0 {
		parts = append(parts, w.style("also under "+joinIDs(task.OtherParents), style.ColorMagenta))
	}
	if task.Hidden {
		parts = append(parts, w.style("(hidden)", style.ColorDim))
	}
	if hiddenChildren > 0 {
		parts = append(parts, w.style(fmt.Sprintf("(+%d hidden)", hiddenChildren), style.ColorDim))
	}
	return strings.Join(parts, " ")
}

// pendingPrerequisites returns the dependencies that are not done yet
func (w walker) pendingPrerequisites(task engine.Task) []engine.TaskID {
	var pending []engine.TaskID
	for _, dep := range task.Dependencies {
		if prereq, ok := w.r.source.FindByID(dep); ok && prereq.Status != engine.StatusDone {
			pending = append(pending, dep)
		}
	}
	return pending
}

func (w walker) style(text string, fn func(string) string) string {
	if w.opts.Plain {
		return text
	}
	return fn(text)
}

func (w walker) paint(text string, fn func(string, int) string) string {
	if w.opts.Plain || text == "" {
		return text
	}
	return fn(text, w.color)
}

func joinIDs(ids []engine.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}
