package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
)

// StatusCommand selects which transition of the work-status machine to apply
type StatusCommand int

const (
	// StatusCycle advances Idle → Working → Done → Idle
	StatusCycle StatusCommand = iota
	// StatusToggleDone jumps to Done, or back to Idle from Done
	StatusToggleDone
	// StatusToggleWorking starts or stops work on the task
	StatusToggleWorking
)

func (c StatusCommand) description(id engine.TaskID) string {
	switch c {
	case StatusToggleDone:
		return fmt.Sprintf("Toggle done #%d", id)
	case StatusToggleWorking:
		return fmt.Sprintf("Toggle working #%d", id)
	default:
		return fmt.Sprintf("Cycle status #%d", id)
	}
}

// StatusAction applies a status transition and reports its side effects
func StatusAction(ctx *runtime.Context, id engine.TaskID, cmd StatusCommand) (engine.StatusChange, error) {
	task, err := requireTask(ctx, id)
	if err != nil {
		return engine.StatusChange{}, err
	}

	var change engine.StatusChange
	err = record(ctx, cmd.description(id), "", func() error {
		var err error
		switch cmd {
		case StatusToggleDone:
			change, err = ctx.Engine.ToggleDone(id)
		case StatusToggleWorking:
			change, err = ctx.Engine.ToggleWorking(id)
		default:
			change, err = ctx.Engine.CycleStatus(id)
		}
		return err
	})
	if err != nil {
		return change, err
	}

	ctx.Splog.Info("%s", DescribeStatusChange(ctx, task, change))
	ctx.Splog.Event("status changed",
		"task", int(id),
		"from", change.From.String(),
		"to", change.To.String(),
		"demoted", change.Demoted,
		"promoted", int(change.Promoted),
	)
	return change, nil
}

// DescribeStatusChange summarizes a transition in one line
func DescribeStatusChange(ctx *runtime.Context, task engine.Task, change engine.StatusChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s → %s.", taskRef(task), change.From, change.To)
	if len(change.Demoted) > 0 {
		fmt.Fprintf(&b, " Stopped working on %s.", idList(change.Demoted))
	}
	if change.Promoted != engine.NoTask {
		fmt.Fprintf(&b, " Now working on %s.", idRef(ctx, change.Promoted))
	}
	return b.String()
}

// RepairAction restores the one-working-task-per-root rule after manual edits or corrupt data
func RepairAction(ctx *runtime.Context) (engine.RepairResult, error) {
	if !NeedsRepair(ctx.Engine) {
		ctx.Splog.Info("Working tasks are consistent; nothing to repair.")
		return engine.RepairResult{Registry: ctx.Engine.WorkingRegistry()}, nil
	}

	var result engine.RepairResult
	err := record(ctx, "Repair working tasks", "", func() error {
		result = ctx.Engine.RepairWorkingTasks()
		return nil
	})
	if err != nil {
		return result, err
	}

	if len(result.Demoted) > 0 {
		ctx.Splog.Info("Stopped working on %s.", idList(result.Demoted))
	}
	if result.RegistryFixed {
		ctx.Splog.Info("Rebuilt the working-task registry.")
	}
	ctx.Splog.Event("working tasks repaired", "demoted", result.Demoted, "registryFixed", result.RegistryFixed)
	return result, nil
}

// NeedsRepair reports whether RepairWorkingTasks would change anything
func NeedsRepair(eng engine.TaskReader) bool {
	expected := map[engine.TaskID]engine.TaskID{}
	for _, task := range eng.AllTasks() {
		if !task.CurrentlyWorking {
			continue
		}
		if task.Status == engine.StatusDone {
			return true
		}
		root, _ := eng.GetRootTask(task.ID)
		if _, seen := expected[root.ID]; seen {
			return true
		}
		expected[root.ID] = task.ID
	}

	registry := eng.WorkingRegistry()
	if len(registry) != len(expected) {
		return true
	}
	for root, id := range expected {
		if registry[root] != id {
			return true
		}
	}
	return false
}
