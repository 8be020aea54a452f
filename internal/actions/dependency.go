package actions

import (
	"fmt"
	"slices"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
)

// DependencyAction toggles "dependent depends on prerequisite".
// A cycle is rejected before anything is recorded.
func DependencyAction(ctx *runtime.Context, dependent, prerequisite engine.TaskID) (engine.DependencyChange, error) {
	if err := ctx.Engine.ValidateDependency(dependent, prerequisite); err != nil {
		return engine.DependencyAdded, err
	}
	task, _ := ctx.Engine.FindByID(dependent)

	description := fmt.Sprintf("Add dependency #%d → #%d", dependent, prerequisite)
	if slices.Contains(task.Dependencies, prerequisite) {
		description = fmt.Sprintf("Remove dependency #%d → #%d", dependent, prerequisite)
	}

	var change engine.DependencyChange
	err := record(ctx, description, "", func() error {
		var err error
		change, err = ctx.Engine.AddDependency(dependent, prerequisite)
		return err
	})
	if err != nil {
		return change, err
	}

	if change == engine.DependencyRemoved {
		ctx.Splog.Info("%s no longer depends on %s.", taskRef(task), idRef(ctx, prerequisite))
		ctx.Splog.Event("dependency removed", "dependent", int(dependent), "prerequisite", int(prerequisite))
	} else {
		ctx.Splog.Info("%s now depends on %s.", taskRef(task), idRef(ctx, prerequisite))
		ctx.Splog.Event("dependency added", "dependent", int(dependent), "prerequisite", int(prerequisite))
	}
	return change, nil
}

// RemoveDependencyAction removes the edge dependent → prerequisite if present
func RemoveDependencyAction(ctx *runtime.Context, dependent, prerequisite engine.TaskID) error {
	return RemoveLinkAction(ctx, engine.Link{Type: engine.LinkDependency, From: dependent, To: prerequisite})
}
