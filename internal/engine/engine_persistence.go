package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
)

// State returns a deep copy of the whole graph
func (e *engineImpl) State() GraphState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateInternal()
}

func (e *engineImpl) stateInternal() GraphState {
	state := GraphState{
		NextID:  e.nextID,
		Tasks:   make([]Task, 0, len(e.tasks)),
		Working: make([]WorkingEntry, 0, len(e.working)),
	}
	for _, t := range e.tasks {
		state.Tasks = append(state.Tasks, t.clone())
	}
	for root, w := range e.working {
		state.Working = append(state.Working, WorkingEntry{Root: root, Task: w})
	}
	slices.SortFunc(state.Working, func(a, b WorkingEntry) int {
		return cmp.Compare(a.Root, b.Root)
	})
	return state
}

// Snapshot serializes the graph for the undo history
func (e *engineImpl) Snapshot() ([]byte, error) {
	state := e.State()
	data, err := sonic.ConfigStd.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the graph with a snapshot produced by Snapshot
func (e *engineImpl) Restore(data []byte) error {
	var state GraphState
	if err := sonic.ConfigStd.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal graph snapshot: %w", err)
	}

	e.mu.Lock()
	e.replaceInternal(state)
	e.mu.Unlock()

	e.notify()
	return nil
}

// Load replaces the graph with persisted state. Persisted data may be stale or corrupt,
// so dangling references are dropped, children are rebuilt from MainParent and
// RepairWorkingTasks runs before Load returns.
func (e *engineImpl) Load(state GraphState) (RepairResult, error) {
	ids := make(map[TaskID]bool, len(state.Tasks))
	for _, t := range state.Tasks {
		if t.ID <= NoTask {
			return RepairResult{}, fmt.Errorf("invalid task id %d", t.ID)
		}
		if ids[t.ID] {
			return RepairResult{}, fmt.Errorf("duplicate task id %d", t.ID)
		}
		ids[t.ID] = true
	}

	e.mu.Lock()
	e.replaceInternal(state)
	e.sanitizeInternal()
	result := e.repairInternal()
	e.mu.Unlock()

	return result, nil
}

// replaceInternal installs state as-is (caller must hold lock)
func (e *engineImpl) replaceInternal(state GraphState) {
	e.tasks = make([]*Task, 0, len(state.Tasks))
	e.index = make(map[TaskID]*Task, len(state.Tasks))
	maxID := NoTask
	for i := range state.Tasks {
		t := state.Tasks[i].clone()
		e.tasks = append(e.tasks, &t)
		e.index[t.ID] = &t
		maxID = max(maxID, t.ID)
	}

	e.working = make(map[TaskID]TaskID, len(state.Working))
	for _, w := range state.Working {
		e.working[w.Root] = w.Task
	}

	// The counter never moves backwards past an existing id
	e.nextID = max(state.NextID, maxID+1, 1)
}

// sanitizeInternal drops references to unknown ids, breaks MainParent cycles and
// rebuilds every Children list as the exact inverse of MainParent.
func (e *engineImpl) sanitizeInternal() {
	known := func(id TaskID) bool {
		_, ok := e.index[id]
		return ok
	}

	for _, t := range e.tasks {
		if t.MainParent != NoTask && (!known(t.MainParent) || t.MainParent == t.ID) {
			t.MainParent = NoTask
		}
		t.OtherParents = slices.DeleteFunc(cloneIDs(t.OtherParents), func(id TaskID) bool {
			return !known(id) || id == t.ID
		})
		t.Dependencies = slices.DeleteFunc(cloneIDs(t.Dependencies), func(id TaskID) bool {
			return !known(id) || id == t.ID
		})
	}

	// Break MainParent cycles: walking up from any task must reach a root
	for _, t := range e.tasks {
		seen := map[TaskID]bool{t.ID: true}
		current := t
		for current.MainParent != NoTask {
			if seen[current.MainParent] {
				current.MainParent = NoTask
				break
			}
			seen[current.MainParent] = true
			current = e.index[current.MainParent]
		}
	}

	// Keep the stored child order where it agrees with MainParent, then append the rest
	for _, t := range e.tasks {
		stored := t.Children
		t.Children = []TaskID{}
		for _, c := range stored {
			child, ok := e.index[c]
			if ok && child.MainParent == t.ID && !slices.Contains(t.Children, c) {
				t.Children = append(t.Children, c)
			}
		}
	}
	for _, t := range e.tasks {
		if t.MainParent == NoTask {
			continue
		}
		parent := e.index[t.MainParent]
		if !slices.Contains(parent.Children, t.ID) {
			parent.Children = append(parent.Children, t.ID)
		}
	}

	// Re-add dependency edges one by one, dropping any edge that would close a cycle
	stored := make(map[TaskID][]TaskID, len(e.tasks))
	for _, t := range e.tasks {
		stored[t.ID] = t.Dependencies
		t.Dependencies = []TaskID{}
	}
	for _, t := range e.tasks {
		for _, dep := range stored[t.ID] {
			if slices.Contains(t.Dependencies, dep) || e.dependsOnInternal(dep, t.ID) {
				continue
			}
			t.Dependencies = append(t.Dependencies, dep)
		}
	}

	for root, w := range e.working {
		if !known(root) || !known(w) {
			delete(e.working, root)
		}
	}
}
