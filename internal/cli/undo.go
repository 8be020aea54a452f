package cli

import (
	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/runtime"
)

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Long: `Restore the task map to the state before the last change.

With --to, undo every change back to and including the history entry with
that id. Ids are listed by 'taskmap history'; any unique prefix works.
Undone changes can be re-applied with 'taskmap redo' until a new change is made.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.UndoAction(ctx, actions.UndoOptions{To: to})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Undo back to this history entry id")

	return cmd
}

// newRedoCmd creates the redo command
func newRedoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "redo",
		Short:        "Re-apply the last undone change",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.RedoAction(ctx)
				return err
			})
		},
	}
	return cmd
}

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List the changes that can be undone, newest first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.HistoryAction)
		},
	}
	return cmd
}
