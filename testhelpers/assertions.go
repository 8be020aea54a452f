// Package testhelpers provides testing utilities for taskmap,
// including a scene system, graph builders, and custom assertions.
package testhelpers

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// RequireInvariants asserts every structural invariant of the task graph:
// unique ids below the counter, children as the exact inverse of MainParent,
// an acyclic tree and dependency graph, no dangling references, and at most one
// working task per root with a registry that agrees.
func RequireInvariants(t *testing.T, eng engine.Engine) {
	t.Helper()

	state := eng.State()
	byID := make(map[engine.TaskID]engine.Task, len(state.Tasks))
	for _, task := range state.Tasks {
		_, dup := byID[task.ID]
		require.False(t, dup, "duplicate task id %d", task.ID)
		require.Less(t, task.ID, state.NextID, "task id %d not below counter %d", task.ID, state.NextID)
		byID[task.ID] = task
	}

	for _, task := range state.Tasks {
		if task.MainParent != engine.NoTask {
			parent, ok := byID[task.MainParent]
			require.True(t, ok, "task %d has dangling main parent %d", task.ID, task.MainParent)
			require.Contains(t, parent.Children, task.ID, "task %d missing from parent %d children", task.ID, parent.ID)
		}
		seen := map[engine.TaskID]bool{}
		for _, c := range task.Children {
			require.False(t, seen[c], "child %d listed twice under %d", c, task.ID)
			seen[c] = true
			child, ok := byID[c]
			require.True(t, ok, "task %d has dangling child %d", task.ID, c)
			require.Equal(t, task.ID, child.MainParent, "child %d of %d has main parent %d", c, task.ID, child.MainParent)
		}
		for _, d := range task.Dependencies {
			_, ok := byID[d]
			require.True(t, ok, "task %d has dangling dependency %d", task.ID, d)
		}
		for _, p := range task.OtherParents {
			_, ok := byID[p]
			require.True(t, ok, "task %d has dangling other parent %d", task.ID, p)
		}
		if task.CurrentlyWorking {
			require.Equal(t, engine.StatusPending, task.Status, "task %d is working but done", task.ID)
		}
	}

	roots := make(map[engine.TaskID]engine.TaskID, len(state.Tasks))
	for _, task := range state.Tasks {
		current := task
		steps := 0
		for current.MainParent != engine.NoTask {
			current = byID[current.MainParent]
			steps++
			require.LessOrEqual(t, steps, len(state.Tasks), "tree cycle through task %d", task.ID)
		}
		roots[task.ID] = current.ID
	}

	requireAcyclicDependencies(t, state.Tasks)

	workingPerRoot := map[engine.TaskID][]engine.TaskID{}
	for _, task := range state.Tasks {
		if task.CurrentlyWorking {
			workingPerRoot[roots[task.ID]] = append(workingPerRoot[roots[task.ID]], task.ID)
		}
	}
	registry := state.Registry()
	for root, working := range workingPerRoot {
		require.Len(t, working, 1, "root %d has several working tasks: %v", root, working)
		require.Equal(t, working[0], registry[root], "registry disagrees for root %d", root)
	}
	for root, w := range registry {
		require.Contains(t, workingPerRoot[root], w, "registry entry %d -> %d has no working flag", root, w)
	}
}

func requireAcyclicDependencies(t *testing.T, tasks []engine.Task) {
	t.Helper()

	deps := make(map[engine.TaskID][]engine.TaskID, len(tasks))
	for _, task := range tasks {
		deps[task.ID] = task.Dependencies
	}

	const (
		unvisited = iota
		inProgress
		finished
	)
	state := make(map[engine.TaskID]int, len(tasks))
	var visit func(id engine.TaskID) bool
	visit = func(id engine.TaskID) bool {
		switch state[id] {
		case inProgress:
			return false
		case finished:
			return true
		}
		state[id] = inProgress
		for _, d := range deps[id] {
			if !visit(d) {
				return false
			}
		}
		state[id] = finished
		return true
	}
	for _, task := range tasks {
		require.True(t, visit(task.ID), "dependency cycle through task %d", task.ID)
	}
}

// RequireNoReferences asserts that no task mentions any of the given ids
func RequireNoReferences(t *testing.T, eng engine.Engine, ids ...engine.TaskID) {
	t.Helper()
	for _, task := range eng.AllTasks() {
		for _, id := range ids {
			require.NotEqual(t, id, task.ID, "task %d still exists", id)
			require.NotEqual(t, id, task.MainParent, "task %d still has parent %d", task.ID, id)
			require.False(t, slices.Contains(task.Children, id), "task %d still lists child %d", task.ID, id)
			require.False(t, slices.Contains(task.Dependencies, id), "task %d still depends on %d", task.ID, id)
			require.False(t, slices.Contains(task.OtherParents, id), "task %d still lists other parent %d", task.ID, id)
		}
	}
	for root, w := range eng.WorkingRegistry() {
		for _, id := range ids {
			require.NotEqual(t, id, root, "registry still keyed by %d", id)
			require.NotEqual(t, id, w, "registry still points at %d", id)
		}
	}
}
