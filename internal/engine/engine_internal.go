package engine

import (
	"slices"

	tmerrors "taskmap.dev/taskmap/internal/errors"
)

// lookup returns the task or a TaskNotFoundError (caller must hold lock)
func (e *engineImpl) lookup(id TaskID) (*Task, error) {
	t, ok := e.index[id]
	if !ok {
		return nil, tmerrors.NewTaskNotFoundError(int(id))
	}
	return t, nil
}

// rootOfInternal walks MainParent to the root (caller must hold lock)
func (e *engineImpl) rootOfInternal(t *Task) *Task {
	current := t
	for current.MainParent != NoTask {
		parent, ok := e.index[current.MainParent]
		if !ok {
			break
		}
		current = parent
	}
	return current
}

// descendantsInternal collects the subtree below id in depth-first order, excluding id
func (e *engineImpl) descendantsInternal(id TaskID) []TaskID {
	result := []TaskID{}
	t, ok := e.index[id]
	if !ok {
		return result
	}

	var collect func(*Task)
	collect = func(node *Task) {
		for _, childID := range node.Children {
			child, ok := e.index[childID]
			if !ok {
				continue
			}
			result = append(result, childID)
			collect(child)
		}
	}
	collect(t)
	return result
}

// isDescendantInternal reports whether candidate lies in the subtree below id
func (e *engineImpl) isDescendantInternal(id, candidate TaskID) bool {
	return slices.Contains(e.descendantsInternal(id), candidate)
}

// workingInSubtreeInternal returns the working task within id's subtree (including id)
func (e *engineImpl) workingInSubtreeInternal(id TaskID) (TaskID, bool) {
	if t, ok := e.index[id]; ok && t.CurrentlyWorking {
		return id, true
	}
	for _, d := range e.descendantsInternal(id) {
		if e.index[d].CurrentlyWorking {
			return d, true
		}
	}
	return NoTask, false
}

// demoteInternal clears a task's working flag (registry is the caller's concern)
func (e *engineImpl) demoteInternal(id TaskID) bool {
	t, ok := e.index[id]
	if !ok || !t.CurrentlyWorking {
		return false
	}
	t.CurrentlyWorking = false
	return true
}

// detachFromParentInternal removes t from its main parent's children and clears MainParent
func (e *engineImpl) detachFromParentInternal(t *Task) {
	if t.MainParent == NoTask {
		return
	}
	if parent, ok := e.index[t.MainParent]; ok {
		parent.Children = removeID(parent.Children, t.ID)
	}
	t.MainParent = NoTask
}

// moveWorkingEntryInternal re-keys the registry after t's subtree changed root.
// oldRoot is the root before the move.
func (e *engineImpl) moveWorkingEntryInternal(t *Task, oldRoot TaskID) []TaskID {
	w, ok := e.workingInSubtreeInternal(t.ID)
	if !ok {
		return nil
	}
	if e.working[oldRoot] == w {
		delete(e.working, oldRoot)
	}

	newRoot := e.rootOfInternal(t).ID
	var demoted []TaskID
	if existing, ok := e.working[newRoot]; ok && existing != w {
		if e.demoteInternal(existing) {
			demoted = append(demoted, existing)
		}
	}
	e.working[newRoot] = w
	return demoted
}

func removeID(ids []TaskID, id TaskID) []TaskID {
	return slices.DeleteFunc(ids, func(x TaskID) bool { return x == id })
}

func removeIDs(ids []TaskID, doomed map[TaskID]bool) []TaskID {
	return slices.DeleteFunc(ids, func(x TaskID) bool { return doomed[x] })
}

func cloneIDs(ids []TaskID) []TaskID {
	if ids == nil {
		return []TaskID{}
	}
	return slices.Clone(ids)
}
