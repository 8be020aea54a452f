package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/testhelpers"
)

func TestCreateTask(t *testing.T) {
	t.Run("creates roots and children with defaults", func(t *testing.T) {
		eng := engine.NewEngine(engine.Options{})

		root, err := eng.CreateTask(engine.CreateOptions{Title: "root", Position: engine.Position{X: 10, Y: 20}})
		require.NoError(t, err)
		require.Equal(t, engine.TaskID(1), root.ID)
		require.True(t, root.IsRoot())
		require.Equal(t, engine.StatusPending, root.Status)
		require.Equal(t, engine.PriorityNormal, root.Priority)
		require.False(t, root.CurrentlyWorking)
		require.False(t, root.Hidden)
		require.Empty(t, root.Children)
		require.Empty(t, root.Dependencies)
		require.Empty(t, root.OtherParents)
		require.Equal(t, engine.Position{X: 10, Y: 20}, root.Position)

		child, err := eng.CreateTask(engine.CreateOptions{Parent: root.ID, Title: "child"})
		require.NoError(t, err)
		require.Equal(t, root.ID, child.MainParent)
		require.Equal(t, []engine.TaskID{child.ID}, eng.GetChildren(root.ID))
		testhelpers.RequireInvariants(t, eng)
	})

	t.Run("rejects a missing parent without creating anything", func(t *testing.T) {
		eng := engine.NewEngine(engine.Options{})

		_, err := eng.CreateTask(engine.CreateOptions{Parent: 42, Title: "orphan"})
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
		require.Empty(t, eng.AllTasks())
	})

	t.Run("never reuses ids after deletion", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b")
		_, err := b.Engine.DeleteSubtree(b.ID("b"))
		require.NoError(t, err)

		c, err := b.Engine.CreateTask(engine.CreateOptions{Title: "c"})
		require.NoError(t, err)
		require.Equal(t, engine.TaskID(3), c.ID)
	})

	t.Run("fires the change hook", func(t *testing.T) {
		calls := 0
		eng := engine.NewEngine(engine.Options{OnChange: func() { calls++ }})
		_, err := eng.CreateTask(engine.CreateOptions{Title: "a"})
		require.NoError(t, err)
		require.Equal(t, 1, calls)
	})
}

func TestQueries(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).
		Root("a").
		Child("a", "b").
		Child("b", "c").
		Child("a", "d").
		Root("x")
	eng := b.Engine

	t.Run("descendants walk depth first", func(t *testing.T) {
		require.Equal(t, []engine.TaskID{b.ID("b"), b.ID("c"), b.ID("d")}, eng.GetDescendants(b.ID("a")))
		require.Empty(t, eng.GetDescendants(b.ID("c")))
	})

	t.Run("ancestors run nearest first", func(t *testing.T) {
		require.Equal(t, []engine.TaskID{b.ID("b"), b.ID("a")}, eng.GetAncestors(b.ID("c")))
		require.Empty(t, eng.GetAncestors(b.ID("a")))
	})

	t.Run("root and subtree size", func(t *testing.T) {
		root, ok := eng.GetRootTask(b.ID("c"))
		require.True(t, ok)
		require.Equal(t, b.ID("a"), root.ID)
		require.Equal(t, 4, eng.GetSubtreeSize(b.ID("a")))
		require.Equal(t, 1, eng.GetSubtreeSize(b.ID("x")))
		require.Equal(t, []engine.TaskID{b.ID("a"), b.ID("x")}, eng.Roots())
	})

	t.Run("missing ids return not-found values", func(t *testing.T) {
		_, ok := eng.FindByID(99)
		require.False(t, ok)
		_, ok = eng.GetRootTask(99)
		require.False(t, ok)
		require.Empty(t, eng.GetDescendants(99))
		require.Empty(t, eng.GetAncestors(99))
		require.Empty(t, eng.GetChildren(99))
		require.Zero(t, eng.GetSubtreeSize(99))
	})

	t.Run("depth first iterator yields depths and stops early", func(t *testing.T) {
		var titles []string
		var depths []int
		for task, depth := range eng.TasksDepthFirst(engine.NoTask) {
			titles = append(titles, task.Title)
			depths = append(depths, depth)
		}
		require.Equal(t, []string{"a", "b", "c", "d", "x"}, titles)
		require.Equal(t, []int{0, 1, 2, 1, 0}, depths)

		count := 0
		for range eng.TasksDepthFirst(b.ID("a")) {
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})

	t.Run("returned tasks are copies", func(t *testing.T) {
		task, _ := eng.FindByID(b.ID("a"))
		task.Children[0] = 99
		task.Title = "mutated"
		require.Equal(t, "a", b.Task("a").Title)
		require.Equal(t, b.ID("b"), b.Task("a").Children[0])
	})
}

func TestDeleteSubtree(t *testing.T) {
	t.Run("removes the subtree and every dangling reference", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("a").
			Child("a", "b").
			Child("b", "c").
			Root("x").
			Child("x", "y")
		eng := b.Engine

		_, err := eng.AddDependency(b.ID("y"), b.ID("c"))
		require.NoError(t, err)
		_, err = eng.AddDependency(b.ID("x"), b.ID("b"))
		require.NoError(t, err)
		require.NoError(t, eng.AddOtherParent(b.ID("y"), b.ID("b")))
		_, err = eng.CycleStatus(b.ID("c"))
		require.NoError(t, err)

		deleted, err := eng.DeleteSubtree(b.ID("b"))
		require.NoError(t, err)
		require.ElementsMatch(t, []engine.TaskID{b.ID("b"), b.ID("c")}, deleted)

		testhelpers.RequireNoReferences(t, eng, b.ID("b"), b.ID("c"))
		testhelpers.RequireInvariants(t, eng)
		require.Empty(t, b.Task("a").Children)
		require.Empty(t, b.Task("y").Dependencies)
		require.Empty(t, b.Task("y").OtherParents)
		_, ok := eng.WorkingTaskFor(b.ID("a"))
		require.False(t, ok)
	})

	t.Run("deleting a root drops its registry entry", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Child("a", "b")
		_, err := b.Engine.CycleStatus(b.ID("b"))
		require.NoError(t, err)

		_, err = b.Engine.DeleteSubtree(b.ID("a"))
		require.NoError(t, err)
		require.Empty(t, b.Engine.AllTasks())
		require.Empty(t, b.Engine.WorkingRegistry())
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		eng := engine.NewEngine(engine.Options{})
		_, err := eng.DeleteSubtree(5)
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
	})

	t.Run("delete multiple skips missing and already removed ids", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("a").
			Child("a", "b").
			Root("x")

		deleted := b.Engine.DeleteMultiple([]engine.TaskID{b.ID("a"), b.ID("b"), 77, b.ID("x")})
		require.ElementsMatch(t, []engine.TaskID{b.ID("a"), b.ID("b"), b.ID("x")}, deleted)
		require.Empty(t, b.Engine.AllTasks())
	})
}

func TestFieldEdits(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).Root("a")
	eng := b.Engine
	id := b.ID("a")

	require.NoError(t, eng.SetTitle(id, "renamed"))
	require.NoError(t, eng.SetPosition(id, engine.Position{X: 1, Y: 2}))
	require.NoError(t, eng.SetHidden(id, true))
	require.NoError(t, eng.SetPriority(id, engine.PriorityHigh))

	task := b.Task("a")
	require.Equal(t, "renamed", task.Title)
	require.Equal(t, engine.Position{X: 1, Y: 2}, task.Position)
	require.True(t, task.Hidden)
	require.Equal(t, engine.PriorityHigh, task.Priority)

	t.Run("priority cycles normal medium high", func(t *testing.T) {
		require.NoError(t, eng.SetPriority(id, engine.PriorityNormal))
		seen := []engine.Priority{}
		for range 3 {
			p, err := eng.CyclePriority(id)
			require.NoError(t, err)
			seen = append(seen, p)
		}
		require.Equal(t, []engine.Priority{engine.PriorityMedium, engine.PriorityHigh, engine.PriorityNormal}, seen)
	})

	t.Run("edits on missing ids report not found", func(t *testing.T) {
		require.ErrorIs(t, eng.SetTitle(99, "x"), tmerrors.ErrTaskNotFound)
		_, err := eng.CyclePriority(99)
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
	})
}
