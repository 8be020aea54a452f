package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/testhelpers"
)

func TestReparent(t *testing.T) {
	t.Run("moves a child to another root", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("A").
			Child("A", "B").
			Root("C")

		require.NoError(t, b.Engine.Reparent(b.ID("B"), b.ID("C")))

		require.Empty(t, b.Task("A").Children)
		require.Equal(t, []engine.TaskID{b.ID("B")}, b.Task("C").Children)
		require.Equal(t, b.ID("C"), b.Task("B").MainParent)
		testhelpers.RequireInvariants(t, b.Engine)
	})

	t.Run("rejects a descendant as the new parent", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("a").
			Child("a", "b").
			Child("b", "c")
		before := b.Engine.State()

		err := b.Engine.Reparent(b.ID("a"), b.ID("c"))
		require.ErrorIs(t, err, tmerrors.ErrInvalidRelationship)
		require.Equal(t, before, b.Engine.State())

		err = b.Engine.ValidateReparent(b.ID("a"), b.ID("c"))
		require.ErrorIs(t, err, tmerrors.ErrInvalidRelationship)
	})

	t.Run("rejects self parenting and missing tasks", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a")

		require.ErrorIs(t, b.Engine.Reparent(b.ID("a"), b.ID("a")), tmerrors.ErrInvalidRelationship)
		require.ErrorIs(t, b.Engine.Reparent(b.ID("a"), 99), tmerrors.ErrTaskNotFound)
		require.ErrorIs(t, b.Engine.Reparent(99, b.ID("a")), tmerrors.ErrTaskNotFound)
	})

	t.Run("strips dependency edges between task and new parent", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("b"))
		require.NoError(t, err)

		require.NoError(t, b.Engine.Reparent(b.ID("a"), b.ID("b")))
		require.Empty(t, b.Task("a").Dependencies)
		require.Empty(t, b.Task("b").Dependencies)
	})

	t.Run("working task follows its subtree into the new root", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("a").
			Child("a", "b").
			Root("c")
		_, err := b.Engine.ToggleWorking(b.ID("b"))
		require.NoError(t, err)

		require.NoError(t, b.Engine.Reparent(b.ID("b"), b.ID("c")))

		_, ok := b.Engine.WorkingTaskFor(b.ID("a"))
		require.False(t, ok)
		w, ok := b.Engine.WorkingTaskFor(b.ID("c"))
		require.True(t, ok)
		require.Equal(t, b.ID("b"), w)
		testhelpers.RequireInvariants(t, b.Engine)
	})

	t.Run("merging two working trees keeps the moved task", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).
			Root("a").
			Child("a", "b").
			Root("c")
		_, err := b.Engine.ToggleWorking(b.ID("b"))
		require.NoError(t, err)
		_, err = b.Engine.ToggleWorking(b.ID("c"))
		require.NoError(t, err)

		require.NoError(t, b.Engine.Reparent(b.ID("b"), b.ID("c")))

		require.False(t, b.Task("c").CurrentlyWorking)
		require.True(t, b.Task("b").CurrentlyWorking)
		testhelpers.RequireInvariants(t, b.Engine)
	})
}

func TestDetach(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).
		Root("a").
		Child("a", "b").
		Child("b", "c")
	_, err := b.Engine.ToggleWorking(b.ID("c"))
	require.NoError(t, err)

	require.NoError(t, b.Engine.Detach(b.ID("b")))

	require.True(t, b.Task("b").IsRoot())
	require.Empty(t, b.Task("a").Children)
	require.Equal(t, []engine.TaskID{b.ID("c")}, b.Task("b").Children)
	w, ok := b.Engine.WorkingTaskFor(b.ID("b"))
	require.True(t, ok)
	require.Equal(t, b.ID("c"), w)
	testhelpers.RequireInvariants(t, b.Engine)

	t.Run("detaching a root is a no-op", func(t *testing.T) {
		calls := 0
		engine.SetOnChange(b.Engine, func() { calls++ })
		defer engine.SetOnChange(b.Engine, nil)

		require.NoError(t, b.Engine.Detach(b.ID("a")))
		require.Zero(t, calls)
	})
}

func TestDependencies(t *testing.T) {
	t.Run("reverse edge is rejected as cyclic", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("X").Root("Y")

		change, err := b.Engine.AddDependency(b.ID("X"), b.ID("Y"))
		require.NoError(t, err)
		require.Equal(t, engine.DependencyAdded, change)

		_, err = b.Engine.AddDependency(b.ID("Y"), b.ID("X"))
		var cyclic *tmerrors.CyclicDependencyError
		require.ErrorAs(t, err, &cyclic)
		require.Equal(t, int(b.ID("Y")), cyclic.Dependent)
		require.Equal(t, int(b.ID("X")), cyclic.Prerequisite)
		require.Empty(t, b.Task("Y").Dependencies)
	})

	t.Run("transitive cycles are rejected", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b").Root("c")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("b"))
		require.NoError(t, err)
		_, err = b.Engine.AddDependency(b.ID("b"), b.ID("c"))
		require.NoError(t, err)

		require.ErrorIs(t, b.Engine.ValidateDependency(b.ID("c"), b.ID("a")), tmerrors.ErrCyclicDependency)
		_, err = b.Engine.AddDependency(b.ID("c"), b.ID("a"))
		require.ErrorIs(t, err, tmerrors.ErrCyclicDependency)
		testhelpers.RequireInvariants(t, b.Engine)
	})

	t.Run("self dependency is rejected", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("a"))
		require.ErrorIs(t, err, tmerrors.ErrCyclicDependency)
	})

	t.Run("adding an existing edge toggles it off", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("b"))
		require.NoError(t, err)

		require.NoError(t, b.Engine.ValidateDependency(b.ID("a"), b.ID("b")))
		change, err := b.Engine.AddDependency(b.ID("a"), b.ID("b"))
		require.NoError(t, err)
		require.Equal(t, engine.DependencyRemoved, change)
		require.Empty(t, b.Task("a").Dependencies)
	})

	t.Run("dependents are the reverse edges", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b").Root("c")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("c"))
		require.NoError(t, err)
		_, err = b.Engine.AddDependency(b.ID("b"), b.ID("c"))
		require.NoError(t, err)

		require.Equal(t, []engine.TaskID{b.ID("a"), b.ID("b")}, b.Engine.GetDependents(b.ID("c")))
	})

	t.Run("remove dependency ignores absent edges", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b")
		require.NoError(t, b.Engine.RemoveDependency(b.ID("a"), b.ID("b")))
		require.ErrorIs(t, b.Engine.RemoveDependency(99, b.ID("b")), tmerrors.ErrTaskNotFound)
	})
}

func TestOtherParents(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).
		Root("a").
		Child("a", "b").
		Root("c")

	require.NoError(t, b.Engine.AddOtherParent(b.ID("b"), b.ID("c")))
	require.NoError(t, b.Engine.AddOtherParent(b.ID("b"), b.ID("c")))
	require.NoError(t, b.Engine.AddOtherParent(b.ID("b"), b.ID("a")))
	require.Equal(t, []engine.TaskID{b.ID("c")}, b.Task("b").OtherParents)

	require.ErrorIs(t, b.Engine.AddOtherParent(b.ID("b"), b.ID("b")), tmerrors.ErrInvalidRelationship)

	require.NoError(t, b.Engine.RemoveOtherParent(b.ID("b"), b.ID("c")))
	require.Empty(t, b.Task("b").OtherParents)
	testhelpers.RequireInvariants(t, b.Engine)
}

func TestDeleteRelationshipLink(t *testing.T) {
	t.Run("tree link to the main parent detaches", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Child("a", "b")
		require.NoError(t, b.Engine.DeleteRelationshipLink(engine.Link{Type: engine.LinkTree, From: b.ID("b"), To: b.ID("a")}))
		require.True(t, b.Task("b").IsRoot())
		testhelpers.RequireInvariants(t, b.Engine)
	})

	t.Run("tree link to another parent removes it", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Child("a", "b").Root("c")
		require.NoError(t, b.Engine.AddOtherParent(b.ID("b"), b.ID("c")))

		require.NoError(t, b.Engine.DeleteRelationshipLink(engine.Link{Type: engine.LinkTree, From: b.ID("b"), To: b.ID("c")}))
		require.Empty(t, b.Task("b").OtherParents)
		require.Equal(t, b.ID("a"), b.Task("b").MainParent)
	})

	t.Run("dependency link removes the edge", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a").Root("b")
		_, err := b.Engine.AddDependency(b.ID("a"), b.ID("b"))
		require.NoError(t, err)

		require.NoError(t, b.Engine.DeleteRelationshipLink(engine.Link{Type: engine.LinkDependency, From: b.ID("a"), To: b.ID("b")}))
		require.Empty(t, b.Task("a").Dependencies)
	})

	t.Run("unknown link types fail", func(t *testing.T) {
		b := testhelpers.NewGraphBuilder(t).Root("a")
		require.Error(t, b.Engine.DeleteRelationshipLink(engine.Link{Type: "sideways", From: b.ID("a")}))
	})
}
