package actions

import (
	"fmt"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui"
	"taskmap.dev/taskmap/internal/tui/components/tree"
)

// Controller runs browser commands through the same validate → capture → mutate
// path as the CLI, so every browser edit can be undone.
type Controller struct {
	ctx *runtime.Context
}

var _ tree.Controller = (*Controller)(nil)

// NewController creates a browser controller for ctx
func NewController(ctx *runtime.Context) *Controller {
	return &Controller{ctx: ctx}
}

// FindByID looks up a task
func (c *Controller) FindByID(id engine.TaskID) (engine.Task, bool) {
	return c.ctx.Engine.FindByID(id)
}

// Roots returns the root tasks
func (c *Controller) Roots() []engine.TaskID {
	return c.ctx.Engine.Roots()
}

func (c *Controller) status(id engine.TaskID, cmd StatusCommand) (string, error) {
	task, err := requireTask(c.ctx, id)
	if err != nil {
		return "", err
	}
	change, err := StatusAction(c.ctx, id, cmd)
	if err != nil {
		return "", err
	}
	return DescribeStatusChange(c.ctx, task, change), nil
}

// CycleStatus advances the task's status
func (c *Controller) CycleStatus(id engine.TaskID) (string, error) {
	return c.status(id, StatusCycle)
}

// ToggleDone marks the task done or reopens it
func (c *Controller) ToggleDone(id engine.TaskID) (string, error) {
	return c.status(id, StatusToggleDone)
}

// ToggleWorking starts or stops work on the task
func (c *Controller) ToggleWorking(id engine.TaskID) (string, error) {
	return c.status(id, StatusToggleWorking)
}

// CyclePriority advances the task's priority
func (c *Controller) CyclePriority(id engine.TaskID) (string, error) {
	p, err := PriorityAction(c.ctx, id, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("#%d priority: %s", id, p), nil
}

// ToggleHidden hides or unhides the task
func (c *Controller) ToggleHidden(id engine.TaskID) (string, error) {
	task, err := requireTask(c.ctx, id)
	if err != nil {
		return "", err
	}
	if err := HideAction(c.ctx, id, !task.Hidden); err != nil {
		return "", err
	}
	if task.Hidden {
		return fmt.Sprintf("#%d is visible again", id), nil
	}
	return fmt.Sprintf("#%d hidden (press a to show hidden tasks)", id), nil
}

// Undo reverts the latest change
func (c *Controller) Undo() (string, error) {
	return UndoAction(c.ctx, UndoOptions{})
}

// Redo re-applies the latest undone change
func (c *Controller) Redo() (string, error) {
	return RedoAction(c.ctx)
}

// BrowseAction opens the interactive browser
func BrowseAction(ctx *runtime.Context) error {
	return tui.RunBrowser(NewController(ctx), ctx.Splog)
}
