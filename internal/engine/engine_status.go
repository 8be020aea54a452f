package engine

import (
	"maps"
)

// CycleStatus advances a task through Idle → Working → Done → Idle
func (e *engineImpl) CycleStatus(id TaskID) (StatusChange, error) {
	return e.transition(id, func(t *Task, change *StatusChange) {
		switch t.WorkState() {
		case WorkIdle:
			e.startWorkingInternal(t, change)
		case WorkWorking:
			e.completeInternal(t, change)
		case WorkDone:
			t.Status = StatusPending
		}
	})
}

// ToggleDone jumps Idle/Working → Done or Done → Idle
func (e *engineImpl) ToggleDone(id TaskID) (StatusChange, error) {
	return e.transition(id, func(t *Task, change *StatusChange) {
		switch t.WorkState() {
		case WorkIdle, WorkWorking:
			e.completeInternal(t, change)
		case WorkDone:
			t.Status = StatusPending
		}
	})
}

// ToggleWorking starts or stops work on a task. Starting a done task reopens it.
func (e *engineImpl) ToggleWorking(id TaskID) (StatusChange, error) {
	return e.transition(id, func(t *Task, change *StatusChange) {
		switch t.WorkState() {
		case WorkIdle:
			e.startWorkingInternal(t, change)
		case WorkWorking:
			t.CurrentlyWorking = false
			root := e.rootOfInternal(t).ID
			if e.working[root] == t.ID {
				delete(e.working, root)
			}
		case WorkDone:
			t.Status = StatusPending
			e.startWorkingInternal(t, change)
		}
	})
}

// transition runs fn against a task under the write lock and records the resulting StatusChange
func (e *engineImpl) transition(id TaskID, fn func(t *Task, change *StatusChange)) (StatusChange, error) {
	e.mu.Lock()
	t, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return StatusChange{}, err
	}

	change := StatusChange{Task: id, From: t.WorkState()}
	fn(t, &change)
	change.To = t.WorkState()
	e.mu.Unlock()

	e.notify()
	return change, nil
}

// startWorkingInternal moves t into Working, demoting the root's previous working task
func (e *engineImpl) startWorkingInternal(t *Task, change *StatusChange) {
	root := e.rootOfInternal(t).ID
	if current, ok := e.working[root]; ok && current != t.ID {
		if e.demoteInternal(current) {
			change.Demoted = append(change.Demoted, current)
		}
	}
	t.CurrentlyWorking = true
	e.working[root] = t.ID
}

// completeInternal marks t done. If t was working and its parent is unfinished,
// the parent is promoted straight into Working (flow-state promotion).
func (e *engineImpl) completeInternal(t *Task, change *StatusChange) {
	wasWorking := t.CurrentlyWorking
	root := e.rootOfInternal(t).ID

	t.CurrentlyWorking = false
	t.Status = StatusDone
	if !wasWorking {
		return
	}
	if e.working[root] == t.ID {
		delete(e.working, root)
	}

	if t.MainParent == NoTask {
		return
	}
	parent, ok := e.index[t.MainParent]
	if !ok || parent.Status == StatusDone {
		return
	}

	// There should be no other working task left in this root after the
	// completion above; stale flags from corrupt data are demoted here.
	for _, other := range e.tasks {
		if other.ID == parent.ID || !other.CurrentlyWorking {
			continue
		}
		if e.rootOfInternal(other).ID == root {
			other.CurrentlyWorking = false
			change.Demoted = append(change.Demoted, other.ID)
		}
	}

	parent.CurrentlyWorking = true
	e.working[root] = parent.ID
	change.Promoted = parent.ID
}

// RepairWorkingTasks restores the one-working-task-per-root invariant.
// Tasks are scanned in collection order; the first working task found per root is kept,
// the rest are demoted, and the registry is rewritten to match. Safe to call at any time.
func (e *engineImpl) RepairWorkingTasks() RepairResult {
	e.mu.Lock()
	result := e.repairInternal()
	e.mu.Unlock()

	if result.Changed() {
		e.notify()
	}
	return result
}

func (e *engineImpl) repairInternal() RepairResult {
	result := RepairResult{Registry: make(map[TaskID]TaskID)}
	for _, t := range e.tasks {
		if !t.CurrentlyWorking {
			continue
		}
		if t.Status == StatusDone {
			t.CurrentlyWorking = false
			result.Demoted = append(result.Demoted, t.ID)
			continue
		}
		root := e.rootOfInternal(t).ID
		if _, seen := result.Registry[root]; seen {
			t.CurrentlyWorking = false
			result.Demoted = append(result.Demoted, t.ID)
			continue
		}
		result.Registry[root] = t.ID
	}

	if !maps.Equal(e.working, result.Registry) {
		result.RegistryFixed = true
	}
	e.working = maps.Clone(result.Registry)
	return result
}
