package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui/style"
)

// record captures the pre-mutation state under description and then applies mutate.
// Callers validate first so that a captured entry always corresponds to a real change.
func record(ctx *runtime.Context, description, groupingKey string, mutate func() error) error {
	if err := ctx.History.Capture(description, groupingKey); err != nil {
		return err
	}
	return mutate()
}

// requireTask returns the task or a TaskNotFoundError
func requireTask(ctx *runtime.Context, id engine.TaskID) (engine.Task, error) {
	task, ok := ctx.Engine.FindByID(id)
	if !ok {
		return engine.Task{}, tmerrors.NewTaskNotFoundError(int(id))
	}
	return task, nil
}

// taskRef formats a task for messages, e.g. #3 Write docs
func taskRef(task engine.Task) string {
	return fmt.Sprintf("%s %s", style.ColorCyan(fmt.Sprintf("#%d", task.ID)), task.Title)
}

// idRef formats a task id, including its title when the task exists
func idRef(ctx *runtime.Context, id engine.TaskID) string {
	if task, ok := ctx.Engine.FindByID(id); ok {
		return taskRef(task)
	}
	return fmt.Sprintf("#%d", id)
}

func idList(ids []engine.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

// PluralSuffix returns "s" if plural is true, otherwise empty string
func PluralSuffix(plural bool) string {
	if plural {
		return "s"
	}
	return ""
}
