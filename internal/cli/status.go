package cli

import (
	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/runtime"
)

func newStatusTransitionCmd(use, short, long string, command actions.StatusCommand) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		Long:              long,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.StatusAction(ctx, id, command)
				return err
			})
		},
	}
}

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return newStatusTransitionCmd(
		"status <id>",
		"Cycle a task through idle, working and done",
		`Advance a task to its next status: idle → working → done → idle.

Each tree has at most one working task. Starting work on a task stops work on
any other task in the same tree. Finishing a task hands "working" to its
main parent when that parent is not done yet.`,
		actions.StatusCycle,
	)
}

// newDoneCmd creates the done command
func newDoneCmd() *cobra.Command {
	return newStatusTransitionCmd(
		"done <id>",
		"Mark a task done, or reopen a done task",
		"",
		actions.StatusToggleDone,
	)
}

// newWorkCmd creates the work command
func newWorkCmd() *cobra.Command {
	return newStatusTransitionCmd(
		"work <id>",
		"Start or stop working on a task",
		"",
		actions.StatusToggleWorking,
	)
}

// newRepairCmd creates the repair command
func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Fix working tasks after a hand-edited or damaged state file",
		Long: `Make sure every tree has at most one working task and that no done task
is marked as working. Loading the task map already does this; repair records
the fix as an undoable step.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.RepairAction(ctx)
				return err
			})
		},
	}
	return cmd
}
