package engine

// CreateTask creates a task with default fields under opts.Parent (or as a new root)
func (e *engineImpl) CreateTask(opts CreateOptions) (Task, error) {
	e.mu.Lock()

	var parent *Task
	if opts.Parent != NoTask {
		p, err := e.lookup(opts.Parent)
		if err != nil {
			e.mu.Unlock()
			return Task{}, err
		}
		parent = p
	}

	t := &Task{
		ID:           e.nextID,
		Title:        opts.Title,
		MainParent:   opts.Parent,
		Children:     []TaskID{},
		OtherParents: []TaskID{},
		Dependencies: []TaskID{},
		Status:       StatusPending,
		Priority:     PriorityNormal,
		Position:     opts.Position,
	}
	e.nextID++
	e.tasks = append(e.tasks, t)
	e.index[t.ID] = t
	if parent != nil {
		parent.Children = append(parent.Children, t.ID)
	}
	created := t.clone()
	e.mu.Unlock()

	e.notify()
	return created, nil
}

// DeleteSubtree deletes a task and all its tree descendants, scrubbing every reference to them.
// It returns the deleted ids, the requested task first.
func (e *engineImpl) DeleteSubtree(id TaskID) ([]TaskID, error) {
	e.mu.Lock()
	if _, err := e.lookup(id); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	deleted := e.deleteSubtreeInternal(id)
	e.mu.Unlock()

	e.notify()
	return deleted, nil
}

// DeleteMultiple deletes several subtrees. Missing ids, and ids already removed as part of
// an earlier subtree, are skipped.
func (e *engineImpl) DeleteMultiple(ids []TaskID) []TaskID {
	e.mu.Lock()
	deleted := []TaskID{}
	for _, id := range ids {
		if _, ok := e.index[id]; !ok {
			continue
		}
		deleted = append(deleted, e.deleteSubtreeInternal(id)...)
	}
	e.mu.Unlock()

	if len(deleted) > 0 {
		e.notify()
	}
	return deleted
}

// deleteSubtreeInternal removes id and its descendants (caller must hold lock)
func (e *engineImpl) deleteSubtreeInternal(id TaskID) []TaskID {
	deleted := append([]TaskID{id}, e.descendantsInternal(id)...)
	doomed := make(map[TaskID]bool, len(deleted))
	for _, d := range deleted {
		doomed[d] = true
	}

	// Remove dangling references from the survivors
	for _, t := range e.tasks {
		if doomed[t.ID] {
			continue
		}
		t.Children = removeIDs(t.Children, doomed)
		t.Dependencies = removeIDs(t.Dependencies, doomed)
		t.OtherParents = removeIDs(t.OtherParents, doomed)
	}

	for root, w := range e.working {
		if doomed[root] || doomed[w] {
			delete(e.working, root)
		}
	}

	kept := e.tasks[:0]
	for _, t := range e.tasks {
		if doomed[t.ID] {
			delete(e.index, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	clear(e.tasks[len(kept):])
	e.tasks = kept

	return deleted
}

// SetTitle renames a task
func (e *engineImpl) SetTitle(id TaskID, title string) error {
	return e.edit(id, func(t *Task) { t.Title = title })
}

// SetPosition stores a layout hint for a task
func (e *engineImpl) SetPosition(id TaskID, pos Position) error {
	return e.edit(id, func(t *Task) { t.Position = pos })
}

// SetHidden hides or shows a task. Hidden tasks keep every relationship.
func (e *engineImpl) SetHidden(id TaskID, hidden bool) error {
	return e.edit(id, func(t *Task) { t.Hidden = hidden })
}

// SetPriority sets a task's priority
func (e *engineImpl) SetPriority(id TaskID, p Priority) error {
	return e.edit(id, func(t *Task) { t.Priority = p })
}

// CyclePriority advances normal → medium → high → normal and returns the new priority
func (e *engineImpl) CyclePriority(id TaskID) (Priority, error) {
	var next Priority
	err := e.edit(id, func(t *Task) {
		t.Priority = t.Priority.Next()
		next = t.Priority
	})
	return next, err
}

// edit applies fn to a single task under the write lock
func (e *engineImpl) edit(id TaskID, fn func(t *Task)) error {
	e.mu.Lock()
	t, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	fn(t)
	e.mu.Unlock()

	e.notify()
	return nil
}
