package engine

import (
	"fmt"
	"slices"

	tmerrors "taskmap.dev/taskmap/internal/errors"
)

// ValidateReparent checks that taskID can be placed under newParentID without mutating anything
func (e *engineImpl) ValidateReparent(taskID, newParentID TaskID) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, _, err := e.validateReparentInternal(taskID, newParentID)
	return err
}

func (e *engineImpl) validateReparentInternal(taskID, newParentID TaskID) (*Task, *Task, error) {
	t, err := e.lookup(taskID)
	if err != nil {
		return nil, nil, err
	}
	parent, err := e.lookup(newParentID)
	if err != nil {
		return nil, nil, err
	}
	if taskID == newParentID {
		return nil, nil, tmerrors.NewInvalidRelationshipError(int(taskID), int(newParentID), "a task cannot be its own parent")
	}
	if e.isDescendantInternal(taskID, newParentID) {
		return nil, nil, tmerrors.NewInvalidRelationshipError(int(taskID), int(newParentID), "the new parent is a descendant of the task")
	}
	return t, parent, nil
}

// Reparent moves taskID (with its subtree) under newParentID.
// Dependency edges between the task and its new parent are stripped, and a
// working task inside the moved subtree follows it into the new root tree.
func (e *engineImpl) Reparent(taskID, newParentID TaskID) error {
	e.mu.Lock()
	t, parent, err := e.validateReparentInternal(taskID, newParentID)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	oldRoot := e.rootOfInternal(t).ID
	e.detachFromParentInternal(t)
	t.MainParent = parent.ID
	parent.Children = append(parent.Children, t.ID)

	t.Dependencies = removeID(t.Dependencies, parent.ID)
	parent.Dependencies = removeID(parent.Dependencies, t.ID)

	e.moveWorkingEntryInternal(t, oldRoot)
	e.mu.Unlock()

	e.notify()
	return nil
}

// Detach makes taskID the root of its own tree
func (e *engineImpl) Detach(taskID TaskID) error {
	e.mu.Lock()
	t, err := e.lookup(taskID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if t.MainParent == NoTask {
		e.mu.Unlock()
		return nil
	}

	oldRoot := e.rootOfInternal(t).ID
	e.detachFromParentInternal(t)
	e.moveWorkingEntryInternal(t, oldRoot)
	e.mu.Unlock()

	e.notify()
	return nil
}

// AddOtherParent records a secondary, purely presentational parent
func (e *engineImpl) AddOtherParent(taskID, parentID TaskID) error {
	e.mu.Lock()
	t, err := e.lookup(taskID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if _, err := e.lookup(parentID); err != nil {
		e.mu.Unlock()
		return err
	}
	if taskID == parentID {
		e.mu.Unlock()
		return tmerrors.NewInvalidRelationshipError(int(taskID), int(parentID), "a task cannot be its own parent")
	}
	if t.MainParent == parentID || slices.Contains(t.OtherParents, parentID) {
		e.mu.Unlock()
		return nil
	}
	t.OtherParents = append(t.OtherParents, parentID)
	e.mu.Unlock()

	e.notify()
	return nil
}

// RemoveOtherParent removes a secondary parent if present
func (e *engineImpl) RemoveOtherParent(taskID, parentID TaskID) error {
	e.mu.Lock()
	t, err := e.lookup(taskID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !slices.Contains(t.OtherParents, parentID) {
		e.mu.Unlock()
		return nil
	}
	t.OtherParents = removeID(t.OtherParents, parentID)
	e.mu.Unlock()

	e.notify()
	return nil
}

// ValidateDependency checks that dependentID may depend on prerequisiteID.
// An existing edge is valid: AddDependency would remove it.
func (e *engineImpl) ValidateDependency(dependentID, prerequisiteID TaskID) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, _, err := e.validateDependencyInternal(dependentID, prerequisiteID)
	return err
}

func (e *engineImpl) validateDependencyInternal(dependentID, prerequisiteID TaskID) (*Task, bool, error) {
	dependent, err := e.lookup(dependentID)
	if err != nil {
		return nil, false, err
	}
	if _, err := e.lookup(prerequisiteID); err != nil {
		return nil, false, err
	}
	if slices.Contains(dependent.Dependencies, prerequisiteID) {
		return dependent, true, nil
	}
	if dependentID == prerequisiteID || e.dependsOnInternal(prerequisiteID, dependentID) {
		return nil, false, tmerrors.NewCyclicDependencyError(int(dependentID), int(prerequisiteID))
	}
	return dependent, false, nil
}

// dependsOnInternal runs a breadth-first search from start over dependency edges
// and reports whether target is reachable
func (e *engineImpl) dependsOnInternal(start, target TaskID) bool {
	visited := map[TaskID]bool{start: true}
	queue := []TaskID{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		t, ok := e.index[current]
		if !ok {
			continue
		}
		for _, dep := range t.Dependencies {
			if dep == target {
				return true
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return false
}

// AddDependency toggles the edge dependentID → prerequisiteID.
// An existing edge is removed; a new edge that would close a cycle is rejected.
func (e *engineImpl) AddDependency(dependentID, prerequisiteID TaskID) (DependencyChange, error) {
	e.mu.Lock()
	dependent, exists, err := e.validateDependencyInternal(dependentID, prerequisiteID)
	if err != nil {
		e.mu.Unlock()
		return DependencyAdded, err
	}

	change := DependencyAdded
	if exists {
		dependent.Dependencies = removeID(dependent.Dependencies, prerequisiteID)
		change = DependencyRemoved
	} else {
		dependent.Dependencies = append(dependent.Dependencies, prerequisiteID)
	}
	e.mu.Unlock()

	e.notify()
	return change, nil
}

// RemoveDependency removes the edge fromID → toID if present
func (e *engineImpl) RemoveDependency(fromID, toID TaskID) error {
	e.mu.Lock()
	from, err := e.lookup(fromID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !slices.Contains(from.Dependencies, toID) {
		e.mu.Unlock()
		return nil
	}
	from.Dependencies = removeID(from.Dependencies, toID)
	e.mu.Unlock()

	e.notify()
	return nil
}

// DeleteRelationshipLink removes the edge described by link
func (e *engineImpl) DeleteRelationshipLink(link Link) error {
	switch link.Type {
	case LinkTree:
		t, ok := e.FindByID(link.From)
		if !ok {
			return tmerrors.NewTaskNotFoundError(int(link.From))
		}
		if t.MainParent == link.To {
			return e.Detach(link.From)
		}
		return e.RemoveOtherParent(link.From, link.To)
	case LinkDependency:
		return e.RemoveDependency(link.From, link.To)
	default:
		return fmt.Errorf("unknown link type %q", link.Type)
	}
}
