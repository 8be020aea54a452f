package cli

import (
	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
)

// newTreeCmd creates the tree command
func newTreeCmd() *cobra.Command {
	var all, plain bool

	cmd := &cobra.Command{
		Use:     "tree [id]",
		Aliases: []string{"ls", "log"},
		Short:   "Print the task trees",
		Long: `Print every tree, or only the subtree under [id].

Each line shows the status (○ idle, ◉ working, ✓ done), the id, the title and
priority, plus dependencies and other parents.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.TreeOptions{All: all, Plain: plain, Start: engine.NoTask}
			if len(args) == 1 {
				id, err := helpers.ParseTaskID(args[0])
				if err != nil {
					return err
				}
				opts.Start = id
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.TreeAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden subtrees")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")

	return cmd
}

// newBrowseCmd creates the browse command
func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the task map interactively",
		Long: `Open a full-screen tree browser. Move with the arrow keys, change status
with space, d and w, cycle priority with p, hide with h, undo with u and redo
with r. Every edit is saved and can be undone from the command line too.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.BrowseAction)
		},
	}
	return cmd
}
