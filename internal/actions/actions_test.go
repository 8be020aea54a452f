package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/testhelpers/scenario"
)

func TestCreateAction(t *testing.T) {
	t.Run("creates roots and children with one undo step each", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)

		root, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: "Plan trip"})
		require.NoError(t, err)
		child, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: "Book hotel", Parent: root.ID})
		require.NoError(t, err)

		require.Equal(t, root.ID, child.MainParent)
		require.Contains(t, s.Output(), "Book hotel")
		s.ExpectUndoDepth(2).ExpectInvariants()
	})

	t.Run("missing parent records nothing", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)

		_, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: "Orphan", Parent: 42})
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
		require.Empty(t, s.Engine.AllTasks())
		s.ExpectUndoDepth(0)
	})

	t.Run("title is required without a terminal", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)

		_, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: "   "})
		require.Error(t, err)
		s.ExpectUndoDepth(0)
	})
}

func TestMoveAction(t *testing.T) {
	t.Run("rejected reparent leaves graph and history untouched", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).
			WithRoot("A").
			WithTask("A", "B").
			WithTask("B", "C")
		before := s.Snapshot()

		err := actions.MoveAction(s.Context, s.ID("A"), s.ID("C"))
		require.ErrorIs(t, err, tmerrors.ErrInvalidRelationship)
		require.Equal(t, before, s.Snapshot())
		s.ExpectUndoDepth(0)
	})

	t.Run("undo restores the previous parent exactly", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).
			WithRoot("A").
			WithTask("A", "B").
			WithRoot("X")
		before := s.Snapshot()

		require.NoError(t, actions.MoveAction(s.Context, s.ID("B"), s.ID("X")))
		require.Equal(t, s.ID("X"), s.Task("B").MainParent)
		s.ExpectInvariants()

		_, err := actions.UndoAction(s.Context, actions.UndoOptions{})
		require.NoError(t, err)
		require.Equal(t, before, s.Snapshot())
	})

	t.Run("moving under the current parent is a no-op", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("A").WithTask("A", "B")

		require.NoError(t, actions.MoveAction(s.Context, s.ID("B"), s.ID("A")))
		s.ExpectUndoDepth(0)
	})

	t.Run("detach and other parents", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("A").WithTask("A", "B").WithRoot("X")

		require.NoError(t, actions.DetachAction(s.Context, s.ID("A")))
		s.ExpectUndoDepth(0)

		require.NoError(t, actions.AlsoUnderAction(s.Context, s.ID("B"), s.ID("X")))
		require.Equal(t, []engine.TaskID{s.ID("X")}, s.Task("B").OtherParents)

		require.ErrorIs(t, actions.AlsoUnderAction(s.Context, s.ID("B"), s.ID("B")), tmerrors.ErrInvalidRelationship)

		require.NoError(t, actions.RemoveLinkAction(s.Context, engine.Link{Type: engine.LinkTree, From: s.ID("B"), To: s.ID("A")}))
		require.True(t, s.Task("B").IsRoot())
		require.Equal(t, []engine.TaskID{s.ID("X")}, s.Task("B").OtherParents)

		require.NoError(t, actions.RemoveLinkAction(s.Context, engine.Link{Type: engine.LinkTree, From: s.ID("B"), To: s.ID("A")}))
		s.ExpectUndoDepth(2).ExpectInvariants()
	})
}

func TestDependencyAction(t *testing.T) {
	t.Run("cycle is rejected without a history entry", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("X").WithRoot("Y")

		change, err := actions.DependencyAction(s.Context, s.ID("X"), s.ID("Y"))
		require.NoError(t, err)
		require.Equal(t, engine.DependencyAdded, change)
		before := s.Snapshot()

		_, err = actions.DependencyAction(s.Context, s.ID("Y"), s.ID("X"))
		require.ErrorIs(t, err, tmerrors.ErrCyclicDependency)
		require.Equal(t, before, s.Snapshot())
		s.ExpectUndoDepth(1)
	})

	t.Run("toggling an existing edge removes it", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("X").WithRoot("Y")

		_, err := actions.DependencyAction(s.Context, s.ID("X"), s.ID("Y"))
		require.NoError(t, err)
		change, err := actions.DependencyAction(s.Context, s.ID("X"), s.ID("Y"))
		require.NoError(t, err)
		require.Equal(t, engine.DependencyRemoved, change)
		require.Empty(t, s.Task("X").Dependencies)

		require.NoError(t, actions.RemoveDependencyAction(s.Context, s.ID("X"), s.ID("Y")))
		s.ExpectUndoDepth(2)
	})
}

func TestStatusAction(t *testing.T) {
	s := scenario.NewScenario(t, nil).WithRoot("P").WithTask("P", "Q")

	change, err := actions.StatusAction(s.Context, s.ID("Q"), actions.StatusCycle)
	require.NoError(t, err)
	require.Equal(t, engine.WorkWorking, change.To)

	change, err = actions.StatusAction(s.Context, s.ID("Q"), actions.StatusCycle)
	require.NoError(t, err)
	require.Equal(t, engine.WorkDone, change.To)
	require.Equal(t, s.ID("P"), change.Promoted)
	require.Contains(t, s.Output(), "Now working on")

	_, err = actions.StatusAction(s.Context, 99, actions.StatusToggleDone)
	require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
	s.ExpectUndoDepth(2)

	_, err = actions.UndoAction(s.Context, actions.UndoOptions{})
	require.NoError(t, err)
	require.True(t, s.Task("Q").CurrentlyWorking)
	require.False(t, s.Task("P").CurrentlyWorking)
	s.ExpectInvariants()
}

func TestModifyActions(t *testing.T) {
	t.Run("rapid edits to one title collapse into one undo step", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("draft")

		for _, title := range []string{"d", "dr", "dra"} {
			require.NoError(t, actions.RenameAction(s.Context, actions.RenameOptions{ID: s.ID("draft"), Title: title}))
		}
		s.ExpectUndoDepth(1)

		_, err := actions.UndoAction(s.Context, actions.UndoOptions{})
		require.NoError(t, err)
		// the grouped entry holds the state captured by the latest edit
		require.Equal(t, "dr", s.Task("draft").Title)
	})

	t.Run("position edits group per task", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a").WithRoot("b")

		require.NoError(t, actions.PositionAction(s.Context, s.ID("a"), engine.Position{X: 1}))
		require.NoError(t, actions.PositionAction(s.Context, s.ID("a"), engine.Position{X: 2}))
		require.NoError(t, actions.PositionAction(s.Context, s.ID("b"), engine.Position{X: 3}))
		require.NoError(t, actions.PositionAction(s.Context, s.ID("b"), engine.Position{X: 3}))
		s.ExpectUndoDepth(2)
	})

	t.Run("priority cycles when no value is given", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a")

		p, err := actions.PriorityAction(s.Context, s.ID("a"), nil)
		require.NoError(t, err)
		require.Equal(t, engine.PriorityMedium, p)

		high := engine.PriorityHigh
		p, err = actions.PriorityAction(s.Context, s.ID("a"), &high)
		require.NoError(t, err)
		require.Equal(t, engine.PriorityHigh, p)

		_, err = actions.PriorityAction(s.Context, s.ID("a"), &high)
		require.NoError(t, err)
		s.ExpectUndoDepth(2)
	})

	t.Run("hide and show", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a")

		require.NoError(t, actions.HideAction(s.Context, s.ID("a"), true))
		require.True(t, s.Task("a").Hidden)
		require.NoError(t, actions.HideAction(s.Context, s.ID("a"), true))
		require.NoError(t, actions.HideAction(s.Context, s.ID("a"), false))
		require.False(t, s.Task("a").Hidden)
		s.ExpectUndoDepth(2)
	})
}

func TestDeleteAction(t *testing.T) {
	t.Run("subtree deletion needs confirmation", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a").WithTask("a", "b")

		_, err := actions.DeleteAction(s.Context, actions.DeleteOptions{IDs: []engine.TaskID{s.ID("a")}})
		require.ErrorContains(t, err, "--yes")
		require.Len(t, s.Engine.AllTasks(), 2)
		s.ExpectUndoDepth(0)
	})

	t.Run("deletes, reports missing ids and undoes", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a").WithTask("a", "b").WithRoot("c")
		before := s.Snapshot()

		deleted, err := actions.DeleteAction(s.Context, actions.DeleteOptions{
			IDs: []engine.TaskID{s.ID("a"), 77},
			Yes: true,
		})
		require.NoError(t, err)
		require.ElementsMatch(t, []engine.TaskID{s.ID("a"), s.ID("b")}, deleted)
		require.Contains(t, s.Output(), "Task #77 does not exist")
		s.ExpectInvariants()

		_, err = actions.UndoAction(s.Context, actions.UndoOptions{})
		require.NoError(t, err)
		require.Equal(t, before, s.Snapshot())
	})

	t.Run("single leaf needs no confirmation", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).WithRoot("a")

		deleted, err := actions.DeleteAction(s.Context, actions.DeleteOptions{IDs: []engine.TaskID{s.ID("a")}})
		require.NoError(t, err)
		require.Len(t, deleted, 1)
	})

	t.Run("only missing ids", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)

		_, err := actions.DeleteAction(s.Context, actions.DeleteOptions{IDs: []engine.TaskID{5}})
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
	})
}

func TestRepairAction(t *testing.T) {
	s := scenario.NewScenario(t, nil).WithRoot("a").WithTask("a", "b")
	_, err := s.Engine.ToggleWorking(s.ID("b"))
	require.NoError(t, err)

	require.False(t, actions.NeedsRepair(s.Engine))
	result, err := actions.RepairAction(s.Context)
	require.NoError(t, err)
	require.False(t, result.Changed())
	require.Equal(t, map[engine.TaskID]engine.TaskID{s.ID("a"): s.ID("b")}, result.Registry)
	s.ExpectUndoDepth(0)
}

func TestUndoRedoActions(t *testing.T) {
	s := scenario.NewScenario(t, nil)

	msg, err := actions.UndoAction(s.Context, actions.UndoOptions{})
	require.NoError(t, err)
	require.Equal(t, "Nothing to undo.", msg)
	msg, err = actions.RedoAction(s.Context)
	require.NoError(t, err)
	require.Equal(t, "Nothing to redo.", msg)

	for _, title := range []string{"one", "two", "three"} {
		task, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: title})
		require.NoError(t, err)
		s.Remember(title, task.ID)
	}

	entries := s.Context.History.Entries()
	require.Len(t, entries, 3)
	steps := entries[1].ID[:8]

	msg, err = actions.UndoAction(s.Context, actions.UndoOptions{To: steps})
	require.NoError(t, err)
	require.Equal(t, "Undid 2 changes.", msg)
	require.Len(t, s.Engine.AllTasks(), 1)

	msg, err = actions.RedoAction(s.Context)
	require.NoError(t, err)
	require.Equal(t, "Redid: Add task.", msg)
	require.Len(t, s.Engine.AllTasks(), 2)

	s.Output()
	require.NoError(t, actions.HistoryAction(s.Context))
	out := s.Output()
	require.Contains(t, out, "Add task")
	require.Contains(t, out, "(redo available)")
}

func TestPersistenceAcrossSessions(t *testing.T) {
	s := scenario.NewScenario(t, nil)

	root, err := actions.CreateAction(s.Context, actions.CreateOptions{Title: "Plan"})
	require.NoError(t, err)
	_, err = actions.StatusAction(s.Context, root.ID, actions.StatusToggleWorking)
	require.NoError(t, err)
	before := s.Snapshot()

	s.Rebuild()
	require.Equal(t, before, s.Snapshot())
	s.ExpectUndoDepth(2)

	_, err = actions.UndoAction(s.Context, actions.UndoOptions{})
	require.NoError(t, err)
	task, ok := s.Engine.FindByID(root.ID)
	require.True(t, ok)
	require.False(t, task.CurrentlyWorking)

	s.Rebuild()
	require.True(t, s.Context.History.CanRedo())
	s.ExpectInvariants()
}

func TestController(t *testing.T) {
	s := scenario.NewScenario(t, nil).WithRoot("a")
	ctrl := actions.NewController(s.Context)

	msg, err := ctrl.CycleStatus(s.ID("a"))
	require.NoError(t, err)
	require.Contains(t, msg, "idle → working")

	msg, err = ctrl.ToggleHidden(s.ID("a"))
	require.NoError(t, err)
	require.Contains(t, msg, "hidden")
	require.True(t, s.Task("a").Hidden)

	msg, err = ctrl.CyclePriority(s.ID("a"))
	require.NoError(t, err)
	require.Contains(t, msg, "medium")

	_, err = ctrl.ToggleDone(404)
	require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)

	msg, err = ctrl.Undo()
	require.NoError(t, err)
	require.Equal(t, "Undid: Set priority #1.", msg)
	s.ExpectUndoDepth(2)
}
