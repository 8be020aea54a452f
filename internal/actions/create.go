package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui"
)

// CreateOptions contains options for the add command
type CreateOptions struct {
	Title    string
	Parent   engine.TaskID // engine.NoTask creates a new root
	Position engine.Position
}

// CreateAction adds a task, prompting for a title when none is given
func CreateAction(ctx *runtime.Context, opts CreateOptions) (engine.Task, error) {
	var parent engine.Task
	if opts.Parent != engine.NoTask {
		p, err := requireTask(ctx, opts.Parent)
		if err != nil {
			return engine.Task{}, err
		}
		parent = p
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		if !tui.InteractiveAllowed() {
			return engine.Task{}, fmt.Errorf("a task title is required in non-interactive mode")
		}
		prompted, err := tui.PromptTextInput("Title for the new task:", "")
		if err != nil {
			return engine.Task{}, err
		}
		title = prompted
		if title == "" {
			return engine.Task{}, fmt.Errorf("a task title is required")
		}
	}

	description := "Add task"
	if opts.Parent != engine.NoTask {
		description = fmt.Sprintf("Add task under #%d", opts.Parent)
	}

	var created engine.Task
	err := record(ctx, description, "", func() error {
		var err error
		created, err = ctx.Engine.CreateTask(engine.CreateOptions{
			Parent:   opts.Parent,
			Title:    title,
			Position: opts.Position,
		})
		return err
	})
	if err != nil {
		return engine.Task{}, err
	}

	if opts.Parent != engine.NoTask {
		ctx.Splog.Info("Created %s under %s.", taskRef(created), taskRef(parent))
	} else {
		ctx.Splog.Info("Created %s.", taskRef(created))
	}
	ctx.Splog.Event("task created", "task", int(created.ID), "parent", int(opts.Parent))
	return created, nil
}
