package cli

import (
	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/runtime"
)

// newDeleteCmd creates the rm command
func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks and their subtrees",
		Long: `Delete each task together with every task in its subtree.

Links from other tasks to the deleted ones are removed as well. Deleting more
than one task asks for confirmation; pass --yes to skip it.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.DeleteAction(ctx, actions.DeleteOptions{IDs: ids, Yes: yes})
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
