package actions

import (
	"fmt"
	"slices"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/runtime"
)

// MoveAction makes newParent the main parent of the task.
// Invalid moves are rejected before anything is recorded.
func MoveAction(ctx *runtime.Context, id, newParent engine.TaskID) error {
	if err := ctx.Engine.ValidateReparent(id, newParent); err != nil {
		return err
	}
	task, _ := ctx.Engine.FindByID(id)
	if task.MainParent == newParent {
		ctx.Splog.Info("%s is already under #%d.", taskRef(task), newParent)
		return nil
	}

	err := record(ctx, fmt.Sprintf("Reparent #%d under #%d", id, newParent), "", func() error {
		return ctx.Engine.Reparent(id, newParent)
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info("Moved %s under %s.", taskRef(task), idRef(ctx, newParent))
	ctx.Splog.Event("task reparented", "task", int(id), "parent", int(newParent), "previous", int(task.MainParent))
	return nil
}

// DetachAction makes the task the root of its own tree
func DetachAction(ctx *runtime.Context, id engine.TaskID) error {
	task, err := requireTask(ctx, id)
	if err != nil {
		return err
	}
	if task.IsRoot() {
		ctx.Splog.Info("%s is already a root task.", taskRef(task))
		return nil
	}

	err = record(ctx, fmt.Sprintf("Detach #%d", id), "", func() error {
		return ctx.Engine.Detach(id)
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info("Detached %s into its own tree.", taskRef(task))
	ctx.Splog.Event("task detached", "task", int(id), "previous", int(task.MainParent))
	return nil
}

// AlsoUnderAction adds a secondary parent to the task
func AlsoUnderAction(ctx *runtime.Context, id, parent engine.TaskID) error {
	task, err := requireTask(ctx, id)
	if err != nil {
		return err
	}
	if _, err := requireTask(ctx, parent); err != nil {
		return err
	}
	if id == parent {
		return tmerrors.NewInvalidRelationshipError(int(id), int(parent), "a task cannot be its own parent")
	}
	if task.MainParent == parent || slices.Contains(task.OtherParents, parent) {
		ctx.Splog.Info("%s is already under #%d.", taskRef(task), parent)
		return nil
	}

	err = record(ctx, fmt.Sprintf("Add #%d as a parent of #%d", parent, id), "", func() error {
		return ctx.Engine.AddOtherParent(id, parent)
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info("%s is now also shown under %s.", taskRef(task), idRef(ctx, parent))
	ctx.Splog.Event("other parent added", "task", int(id), "parent", int(parent))
	return nil
}

// RemoveLinkAction deletes a single tree or dependency edge
func RemoveLinkAction(ctx *runtime.Context, link engine.Link) error {
	from, err := requireTask(ctx, link.From)
	if err != nil {
		return err
	}

	var present bool
	var description string
	switch link.Type {
	case engine.LinkTree:
		present = from.MainParent == link.To || slices.Contains(from.OtherParents, link.To)
		description = fmt.Sprintf("Unlink #%d from #%d", link.From, link.To)
	case engine.LinkDependency:
		present = slices.Contains(from.Dependencies, link.To)
		description = fmt.Sprintf("Remove dependency #%d → #%d", link.From, link.To)
	default:
		return fmt.Errorf("unknown link type %q", link.Type)
	}
	if !present {
		ctx.Splog.Info("There is no %s link from #%d to #%d.", link.Type, link.From, link.To)
		return nil
	}

	if err := record(ctx, description, "", func() error {
		return ctx.Engine.DeleteRelationshipLink(link)
	}); err != nil {
		return err
	}

	ctx.Splog.Info("Removed %s link from #%d to #%d.", link.Type, link.From, link.To)
	ctx.Splog.Event("link removed", "type", string(link.Type), "from", int(link.From), "to", int(link.To))
	return nil
}
