package engine

import (
	"iter"
	"maps"
)

// FindByID returns a copy of the task, or false if it does not exist
func (e *engineImpl) FindByID(id TaskID) (Task, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.index[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// AllTasks returns copies of all tasks in creation order
func (e *engineImpl) AllTasks() []Task {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]Task, 0, len(e.tasks))
	for _, t := range e.tasks {
		result = append(result, t.clone())
	}
	return result
}

// Roots returns the ids of all parentless tasks in creation order
func (e *engineImpl) Roots() []TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := []TaskID{}
	for _, t := range e.tasks {
		if t.MainParent == NoTask {
			result = append(result, t.ID)
		}
	}
	return result
}

// GetChildren returns the ordered children of a task
func (e *engineImpl) GetChildren(id TaskID) []TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if t, ok := e.index[id]; ok {
		return cloneIDs(t.Children)
	}
	return []TaskID{}
}

// GetDescendants returns all tree descendants of a task in depth-first order
func (e *engineImpl) GetDescendants(id TaskID) []TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.descendantsInternal(id)
}

// GetAncestors returns the MainParent chain from the nearest parent up to the root
func (e *engineImpl) GetAncestors(id TaskID) []TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := []TaskID{}
	t, ok := e.index[id]
	if !ok {
		return result
	}
	for t.MainParent != NoTask {
		parent, ok := e.index[t.MainParent]
		if !ok {
			break
		}
		result = append(result, parent.ID)
		t = parent
	}
	return result
}

// GetRootTask returns the root of the tree containing id
func (e *engineImpl) GetRootTask(id TaskID) (Task, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.index[id]
	if !ok {
		return Task{}, false
	}
	return e.rootOfInternal(t).clone(), true
}

// GetSubtreeSize returns the number of tasks in id's subtree, id included. Zero if id is missing.
func (e *engineImpl) GetSubtreeSize(id TaskID) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.index[id]; !ok {
		return 0
	}
	return 1 + len(e.descendantsInternal(id))
}

// GetDependents returns the tasks that list id as a prerequisite
func (e *engineImpl) GetDependents(id TaskID) []TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := []TaskID{}
	for _, t := range e.tasks {
		for _, dep := range t.Dependencies {
			if dep == id {
				result = append(result, t.ID)
				break
			}
		}
	}
	return result
}

// TasksDepthFirst returns an iterator that yields tasks starting from start in depth-first order.
// Each iteration yields (task, depth) where depth is 0 for the start task.
// Passing NoTask walks every root tree in creation order.
func (e *engineImpl) TasksDepthFirst(start TaskID) iter.Seq2[Task, int] {
	return func(yield func(Task, int) bool) {
		var visit func(id TaskID, depth int) bool
		visit = func(id TaskID, depth int) bool {
			t, ok := e.FindByID(id)
			if !ok {
				return true
			}
			if !yield(t, depth) {
				return false // iterator wants to stop
			}
			for _, child := range t.Children {
				if !visit(child, depth+1) {
					return false
				}
			}
			return true
		}

		if start != NoTask {
			visit(start, 0)
			return
		}
		for _, root := range e.Roots() {
			if !visit(root, 0) {
				return
			}
		}
	}
}

// WorkingRegistry returns a copy of the root -> working task registry
func (e *engineImpl) WorkingRegistry() map[TaskID]TaskID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.working)
}

// WorkingTaskFor returns the working task registered for a root
func (e *engineImpl) WorkingTaskFor(root TaskID) (TaskID, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	w, ok := e.working[root]
	return w, ok
}
