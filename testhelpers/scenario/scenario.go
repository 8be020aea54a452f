// Package scenario provides a high-level test scenario that combines a Scene,
// an Engine, and a runtime Context to provide a terse API for integration tests.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/testhelpers"
)

// Scenario represents a high-level test scenario that combines a Scene,
// an Engine, and a runtime Context to provide a terse API for integration tests.
type Scenario struct {
	T          *testing.T
	Scene      *testhelpers.Scene
	Engine     engine.Engine
	Context    *runtime.Context
	Out        *bytes.Buffer
	BinaryPath string

	ids map[string]engine.TaskID
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	// Force non-interactive mode for tests
	t.Setenv("TASKMAP_NON_INTERACTIVE", "1")
	t.Setenv("TASKMAP_DIR", "")
	t.Setenv("TASKMAP_LOG_FILE", "")

	s := &Scenario{
		T:     t,
		Scene: testhelpers.NewScene(t, setup),
		Out:   &bytes.Buffer{},
		ids:   make(map[string]engine.TaskID),
	}
	s.open()
	t.Cleanup(func() {
		if s.Context != nil {
			_ = s.Context.Close()
		}
	})
	return s
}

func (s *Scenario) open() {
	s.T.Helper()
	ctx, err := runtime.Open(context.Background(), s.Scene.Workspace, runtime.Options{Writer: s.Out})
	require.NoError(s.T, err)
	s.Context = ctx
	s.Engine = ctx.Engine
}

// Rebuild flushes the current session and loads the workspace again from disk,
// the way the next command invocation would.
func (s *Scenario) Rebuild() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Context.Close())
	s.open()
	return s
}

// WithRoot creates a root task directly in the engine, without recording history
func (s *Scenario) WithRoot(title string) *Scenario {
	return s.WithTask("", title)
}

// WithTask creates a task under the task previously created with parentTitle.
// An empty parentTitle creates a root.
func (s *Scenario) WithTask(parentTitle, title string) *Scenario {
	s.T.Helper()
	parent := engine.NoTask
	if parentTitle != "" {
		parent = s.ID(parentTitle)
	}
	task, err := s.Engine.CreateTask(engine.CreateOptions{Parent: parent, Title: title})
	require.NoError(s.T, err)
	s.ids[title] = task.ID
	return s
}

// Remember records the id of a task created some other way, e.g. through an action
func (s *Scenario) Remember(title string, id engine.TaskID) *Scenario {
	s.ids[title] = id
	return s
}

// ID returns the id of the task created with title
func (s *Scenario) ID(title string) engine.TaskID {
	s.T.Helper()
	id, ok := s.ids[title]
	require.True(s.T, ok, "no task titled %q", title)
	return id
}

// Task returns the current state of the task created with title
func (s *Scenario) Task(title string) engine.Task {
	s.T.Helper()
	task, ok := s.Engine.FindByID(s.ID(title))
	require.True(s.T, ok, "task %q was deleted", title)
	return task
}

// Output returns everything written to the console so far and clears the buffer
func (s *Scenario) Output() string {
	out := s.Out.String()
	s.Out.Reset()
	return out
}

// Snapshot returns the serialized graph, for exact before/after comparisons
func (s *Scenario) Snapshot() []byte {
	s.T.Helper()
	data, err := s.Engine.Snapshot()
	require.NoError(s.T, err)
	return data
}

// ExpectInvariants asserts the structural invariants of the live graph
func (s *Scenario) ExpectInvariants() *Scenario {
	s.T.Helper()
	testhelpers.RequireInvariants(s.T, s.Engine)
	return s
}

// ExpectUndoDepth asserts the number of entries on the undo stack
func (s *Scenario) ExpectUndoDepth(n int) *Scenario {
	s.T.Helper()
	require.Len(s.T, s.Context.History.Entries(), n)
	return s
}

// WithBinaryPath sets the binary used by RunCli
func (s *Scenario) WithBinaryPath(path string) *Scenario {
	s.BinaryPath = path
	return s
}

// RunCli flushes the in-process session, runs a taskmap command and reloads the workspace.
func (s *Scenario) RunCli(args ...string) *Scenario {
	s.T.Helper()
	output, err := s.RunCliAndGetOutput(args...)
	require.NoError(s.T, err, "CLI command failed: taskmap %v\nOutput: %s", args, output)
	return s
}

// RunCliAndGetOutput runs a taskmap command and returns its output
func (s *Scenario) RunCliAndGetOutput(args ...string) (string, error) {
	s.T.Helper()
	if s.BinaryPath == "" {
		s.T.Fatal("BinaryPath not set. Call WithBinaryPath first.")
	}
	require.NoError(s.T, s.Context.Saver.Flush())
	output, err := s.Scene.RunCli(s.BinaryPath, args...)
	s.Rebuild()
	return output, err
}
