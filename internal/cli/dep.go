package cli

import (
	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/runtime"
)

// newDepCmd creates the dep command
func newDepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep <dependent> <prerequisite>",
		Short: "Toggle a dependency between two tasks",
		Long: `Make <dependent> depend on <prerequisite>, or remove the dependency
if it already exists.

Dependencies may cross trees but may not form a cycle.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.DependencyAction(ctx, ids[0], ids[1])
				return err
			})
		},
	}

	cmd.AddCommand(newDepRemoveCmd())

	return cmd
}

// newDepRemoveCmd creates the dep rm command
func newDepRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rm <dependent> <prerequisite>",
		Short:             "Remove a dependency",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RemoveDependencyAction(ctx, ids[0], ids[1])
			})
		},
	}
	return cmd
}
