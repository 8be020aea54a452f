package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
)

// GraphBuilder creates tasks by title and remembers their ids, giving tests a terse way
// to lay out a tree.
type GraphBuilder struct {
	T      *testing.T
	Engine engine.Engine
	ids    map[string]engine.TaskID
}

// NewGraphBuilder returns a builder over a fresh engine
func NewGraphBuilder(t *testing.T) *GraphBuilder {
	t.Helper()
	return &GraphBuilder{
		T:      t,
		Engine: engine.NewEngine(engine.Options{}),
		ids:    make(map[string]engine.TaskID),
	}
}

// Root creates a root task
func (b *GraphBuilder) Root(title string) *GraphBuilder {
	return b.Child("", title)
}

// Child creates a task under the task previously created with parentTitle.
// An empty parentTitle creates a root.
func (b *GraphBuilder) Child(parentTitle, title string) *GraphBuilder {
	b.T.Helper()
	parent := engine.NoTask
	if parentTitle != "" {
		parent = b.ID(parentTitle)
	}
	task, err := b.Engine.CreateTask(engine.CreateOptions{Parent: parent, Title: title})
	require.NoError(b.T, err)
	b.ids[title] = task.ID
	return b
}

// ID returns the id of the task created with title
func (b *GraphBuilder) ID(title string) engine.TaskID {
	b.T.Helper()
	id, ok := b.ids[title]
	require.True(b.T, ok, "no task titled %q", title)
	return id
}

// Task returns the current state of the task created with title
func (b *GraphBuilder) Task(title string) engine.Task {
	b.T.Helper()
	task, ok := b.Engine.FindByID(b.ID(title))
	require.True(b.T, ok, "task %q was deleted", title)
	return task
}
