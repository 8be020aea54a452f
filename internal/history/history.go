// Package history provides undo/redo for the task graph through full-state snapshots
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxDepth is the default number of entries kept on each stack
	DefaultMaxDepth = 50
	// DefaultGroupingWindow is how long a grouped entry stays open for coalescing
	DefaultGroupingWindow = 2000 * time.Millisecond
)

// Snapshotter is the state the history captures and restores.
// The engine implements it.
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

// Entry is one undo or redo step: the full graph state from before a mutation
type Entry struct {
	ID          string          `json:"id"`
	State       json.RawMessage `json:"state"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	GroupingKey string          `json:"groupingKey,omitempty"`
}

// Stacks is the persisted form of both stacks, oldest entry first
type Stacks struct {
	Undo []Entry `json:"undo"`
	Redo []Entry `json:"redo"`
}

// Options configures a History
type Options struct {
	MaxDepth       int
	GroupingWindow time.Duration
	// Continuable reports whether an entry with this description may absorb later
	// captures with the same grouping key. Defaults to IsContinuable.
	Continuable func(description string) bool
	// Now is the clock used for timestamps and the grouping window
	Now func() time.Time
}

// History owns the undo and redo stacks
type History struct {
	mu        sync.Mutex
	target    Snapshotter
	undo      []Entry // oldest first
	redo      []Entry // oldest first
	maxDepth  int
	window    time.Duration
	canGroup  func(string) bool
	now       func() time.Time
	restoring bool
}

// IsContinuable reports whether description belongs to an edit class whose rapid
// repeats collapse into one undo step: title edits and moves.
func IsContinuable(description string) bool {
	return strings.HasPrefix(description, "Edit ") || strings.HasPrefix(description, "Move ")
}

// New creates an empty history over target
func New(target Snapshotter, opts Options) *History {
	h := &History{
		target:   target,
		maxDepth: opts.MaxDepth,
		window:   opts.GroupingWindow,
		canGroup: opts.Continuable,
		now:      opts.Now,
	}
	if h.maxDepth <= 0 {
		h.maxDepth = DefaultMaxDepth
	}
	if h.window <= 0 {
		h.window = DefaultGroupingWindow
	}
	if h.canGroup == nil {
		h.canGroup = IsContinuable
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Capture records the current state before a mutation. It must be called before the
// mutation is applied. Captures made while an undo or redo is restoring are ignored.
func (h *History) Capture(description, groupingKey string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.restoring {
		return nil
	}

	state, err := h.target.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to capture %q: %w", description, err)
	}
	now := h.now()

	if h.shouldCoalesce(groupingKey, now) {
		top := &h.undo[len(h.undo)-1]
		top.State = state
		top.Timestamp = now
	} else {
		h.undo = pushBounded(h.undo, Entry{
			ID:          uuid.NewString(),
			State:       state,
			Description: description,
			Timestamp:   now,
			GroupingKey: groupingKey,
		}, h.maxDepth)
	}
	h.redo = nil
	return nil
}

func (h *History) shouldCoalesce(groupingKey string, now time.Time) bool {
	if groupingKey == "" || len(h.undo) == 0 {
		return false
	}
	top := h.undo[len(h.undo)-1]
	return top.GroupingKey == groupingKey &&
		now.Sub(top.Timestamp) < h.window &&
		h.canGroup(top.Description)
}

// Undo restores the newest undo entry and moves the current state onto the redo stack.
// ok is false when there was nothing to undo.
func (h *History) Undo() (entry Entry, ok bool, err error) {
	return h.step(&h.undo, &h.redo)
}

// Redo re-applies the newest redo entry and moves the current state onto the undo stack.
// ok is false when there was nothing to redo.
func (h *History) Redo() (entry Entry, ok bool, err error) {
	return h.step(&h.redo, &h.undo)
}

// step pops from one stack, pushes the live state onto the other and restores the
// popped state. The restoring flag stays set until Restore returns, so mutations it
// triggers cannot capture.
func (h *History) step(from, to *[]Entry) (Entry, bool, error) {
	h.mu.Lock()
	if h.restoring || len(*from) == 0 {
		h.mu.Unlock()
		return Entry{}, false, nil
	}

	current, err := h.target.Snapshot()
	if err != nil {
		h.mu.Unlock()
		return Entry{}, false, fmt.Errorf("failed to snapshot current state: %w", err)
	}

	entry := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = pushBounded(*to, Entry{
		ID:          uuid.NewString(),
		State:       current,
		Description: entry.Description,
		Timestamp:   h.now(),
	}, h.maxDepth)
	h.restoring = true
	h.mu.Unlock()

	restoreErr := h.target.Restore(entry.State)

	h.mu.Lock()
	h.restoring = false
	if restoreErr != nil {
		// Put both stacks back the way they were
		*to = (*to)[:len(*to)-1]
		*from = append(*from, entry)
	}
	h.mu.Unlock()

	if restoreErr != nil {
		return Entry{}, false, fmt.Errorf("failed to restore %q: %w", entry.Description, restoreErr)
	}
	return entry, true, nil
}

// UndoTo undoes repeatedly until the entry with the given id (or unique id prefix)
// has been restored. It returns the number of steps taken.
func (h *History) UndoTo(id string) (int, error) {
	target, err := h.find(id)
	if err != nil {
		return 0, err
	}

	steps := 0
	for {
		entry, ok, err := h.Undo()
		if err != nil {
			return steps, err
		}
		if !ok {
			return steps, fmt.Errorf("history entry %s is no longer on the undo stack", target)
		}
		steps++
		if entry.ID == target {
			return steps, nil
		}
	}
}

func (h *History) find(id string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var matches []string
	for _, e := range h.undo {
		if e.ID == id {
			return e.ID, nil
		}
		if id != "" && strings.HasPrefix(e.ID, id) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no undo entry matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: %d undo entries match", id, len(matches))
	}
}

// CanUndo reports whether the undo stack is non-empty
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Restoring reports whether an undo or redo is currently restoring state
func (h *History) Restoring() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.restoring
}

// TrimTo keeps only the newest n undo entries and clears the redo stack.
// Used to shrink the persisted document when storage runs out.
func (h *History) TrimTo(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n = max(n, 0)
	if len(h.undo) > n {
		h.undo = append([]Entry(nil), h.undo[len(h.undo)-n:]...)
	}
	h.redo = nil
}

// Clear empties both stacks
func (h *History) Clear() {
	h.TrimTo(0)
}

// Entries returns the undo stack, newest first
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]Entry, 0, len(h.undo))
	for i := len(h.undo) - 1; i >= 0; i-- {
		entries = append(entries, h.undo[i])
	}
	return entries
}

// Export returns a copy of both stacks for persistence
func (h *History) Export() Stacks {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stacks{
		Undo: append([]Entry{}, h.undo...),
		Redo: append([]Entry{}, h.redo...),
	}
}

// Import replaces both stacks, keeping at most the newest MaxDepth entries of each
func (h *History) Import(s Stacks) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = newest(s.Undo, h.maxDepth)
	h.redo = newest(s.Redo, h.maxDepth)
}

func pushBounded(stack []Entry, e Entry, depth int) []Entry {
	stack = append(stack, e)
	if len(stack) > depth {
		stack = append([]Entry(nil), stack[len(stack)-depth:]...)
	}
	return stack
}

func newest(entries []Entry, depth int) []Entry {
	if len(entries) > depth {
		entries = entries[len(entries)-depth:]
	}
	return append([]Entry(nil), entries...)
}
