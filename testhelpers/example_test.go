package testhelpers_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/testhelpers"
)

// TestExampleUsage demonstrates how to lay out a graph with the builder.
func TestExampleUsage(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).
		Root("home").
		Child("home", "kitchen").
		Child("kitchen", "fridge")

	require.Equal(t, []engine.TaskID{b.ID("kitchen"), b.ID("home")}, b.Engine.GetAncestors(b.ID("fridge")))
	require.Equal(t, "fridge", b.Task("fridge").Title)
	testhelpers.RequireInvariants(t, b.Engine)
}

// TestSceneWithSetup demonstrates using a custom setup function.
func TestSceneWithSetup(t *testing.T) {
	t.Parallel()

	var ran bool
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		ran = true
		return nil
	})

	require.True(t, ran)
	require.Equal(t, filepath.Join(scene.Dir, config.DirName), scene.Workspace)
	require.FileExists(t, config.ConfigPath(scene.Workspace))
	require.Contains(t, scene.CliEnv(), "TASKMAP_NON_INTERACTIVE=1")
}

func TestRequireNoReferences(t *testing.T) {
	b := testhelpers.NewGraphBuilder(t).
		Root("a").
		Child("a", "b").
		Root("c")
	testhelpers.Must(b.Engine.AddDependency(b.ID("c"), b.ID("b")))
	require.NoError(t, b.Engine.AddOtherParent(b.ID("c"), b.ID("b")))

	deleted := testhelpers.Must(b.Engine.DeleteSubtree(b.ID("b")))
	require.Equal(t, []engine.TaskID{b.ID("b")}, deleted)
	testhelpers.RequireNoReferences(t, b.Engine, deleted...)
	testhelpers.RequireInvariants(t, b.Engine)
}
