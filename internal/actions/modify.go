package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui"
)

// Grouped edits: repeated edits to the same task inside the grouping window
// collapse into one undo step.
func titleKey(id engine.TaskID) string    { return fmt.Sprintf("title:%d", id) }
func positionKey(id engine.TaskID) string { return fmt.Sprintf("pos:%d", id) }

// RenameOptions contains options for the rename command
type RenameOptions struct {
	ID    engine.TaskID
	Title string // empty opens the editor
}

// RenameAction changes a task's title
func RenameAction(ctx *runtime.Context, opts RenameOptions) error {
	task, err := requireTask(ctx, opts.ID)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		if !tui.InteractiveAllowed() {
			return fmt.Errorf("a new title is required in non-interactive mode")
		}
		title, err = tui.EditTitle(task.Title)
		if err != nil {
			return err
		}
	}
	if title == task.Title {
		ctx.Splog.Info("%s already has that title.", taskRef(task))
		return nil
	}

	err = record(ctx, fmt.Sprintf("Edit title #%d", opts.ID), titleKey(opts.ID), func() error {
		return ctx.Engine.SetTitle(opts.ID, title)
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info("Renamed #%d to %s.", opts.ID, title)
	ctx.Splog.Event("task renamed", "task", int(opts.ID), "from", task.Title, "to", title)
	return nil
}

// PositionAction stores a layout position for the task
func PositionAction(ctx *runtime.Context, id engine.TaskID, pos engine.Position) error {
	task, err := requireTask(ctx, id)
	if err != nil {
		return err
	}
	if task.Position == pos {
		return nil
	}

	err = record(ctx, fmt.Sprintf("Move task #%d", id), positionKey(id), func() error {
		return ctx.Engine.SetPosition(id, pos)
	})
	if err != nil {
		return err
	}

	ctx.Splog.Debug("Moved #%d to (%g, %g).", id, pos.X, pos.Y)
	ctx.Splog.Event("task positioned", "task", int(id), "x", pos.X, "y", pos.Y)
	return nil
}

// PriorityAction sets the task's priority, or advances it one step when priority is nil
func PriorityAction(ctx *runtime.Context, id engine.TaskID, priority *engine.Priority) (engine.Priority, error) {
	task, err := requireTask(ctx, id)
	if err != nil {
		return engine.PriorityNormal, err
	}

	next := task.Priority.Next()
	if priority != nil {
		next = *priority
	}
	if next == task.Priority {
		ctx.Splog.Info("%s already has %s priority.", taskRef(task), next)
		return next, nil
	}

	err = record(ctx, fmt.Sprintf("Set priority #%d", id), "", func() error {
		return ctx.Engine.SetPriority(id, next)
	})
	if err != nil {
		return task.Priority, err
	}

	ctx.Splog.Info("%s: priority %s → %s.", taskRef(task), task.Priority, next)
	ctx.Splog.Event("priority changed", "task", int(id), "from", task.Priority.String(), "to", next.String())
	return next, nil
}

// HideAction hides or shows a task and its subtree in tree views
func HideAction(ctx *runtime.Context, id engine.TaskID, hidden bool) error {
	task, err := requireTask(ctx, id)
	if err != nil {
		return err
	}

	verb := "Hide"
	if !hidden {
		verb = "Show"
	}
	if task.Hidden == hidden {
		ctx.Splog.Info("%s is already %s.", taskRef(task), map[bool]string{true: "hidden", false: "shown"}[hidden])
		return nil
	}

	err = record(ctx, fmt.Sprintf("%s #%d", verb, id), "", func() error {
		return ctx.Engine.SetHidden(id, hidden)
	})
	if err != nil {
		return err
	}

	if hidden {
		ctx.Splog.Info("Hid %s.", taskRef(task))
	} else {
		ctx.Splog.Info("Unhid %s.", taskRef(task))
	}
	ctx.Splog.Event("task visibility changed", "task", int(id), "hidden", hidden)
	return nil
}
