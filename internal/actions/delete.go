package actions

import (
	"fmt"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui"
)

// DeleteOptions contains options for the rm command
type DeleteOptions struct {
	IDs []engine.TaskID
	// Yes skips the confirmation asked before removing more tasks than were named
	Yes bool
}

// DeleteAction deletes the named tasks together with their subtrees.
// Missing ids are reported and skipped.
func DeleteAction(ctx *runtime.Context, opts DeleteOptions) ([]engine.TaskID, error) {
	eng := ctx.Engine

	var existing []engine.TaskID
	affected := map[engine.TaskID]bool{}
	for _, id := range opts.IDs {
		if _, ok := eng.FindByID(id); !ok {
			ctx.Splog.Warn("Task #%d does not exist.", id)
			continue
		}
		existing = append(existing, id)
		affected[id] = true
		for _, d := range eng.GetDescendants(id) {
			affected[d] = true
		}
	}
	if len(existing) == 0 {
		if len(opts.IDs) == 0 {
			return nil, fmt.Errorf("no tasks given")
		}
		return nil, tmerrors.NewTaskNotFoundError(int(opts.IDs[0]))
	}

	if len(affected) > len(existing) && !opts.Yes {
		if !tui.InteractiveAllowed() {
			return nil, fmt.Errorf("this would delete %d tasks including subtasks; pass --yes to confirm", len(affected))
		}
		confirmed, err := tui.PromptConfirm(fmt.Sprintf("Delete %d tasks including subtasks?", len(affected)), false)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			ctx.Splog.Info("Delete canceled.")
			return nil, nil
		}
	}

	description := fmt.Sprintf("Delete task #%d", existing[0])
	if len(existing) > 1 {
		description = fmt.Sprintf("Delete %d tasks", len(existing))
	}

	var deleted []engine.TaskID
	err := record(ctx, description, "", func() error {
		deleted = eng.DeleteMultiple(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx.Splog.Info("Deleted %d task%s (%s).", len(deleted), PluralSuffix(len(deleted) != 1), idList(deleted))
	ctx.Splog.Event("tasks deleted", "tasks", deleted)
	return deleted, nil
}
