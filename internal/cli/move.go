package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
)

// newMoveCmd creates the mv command
func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <id> <parent>",
		Short: "Move a task under a new main parent",
		Long: `Move a task, with its subtree, under a new main parent.

Moving a task below one of its own descendants is rejected. If the move joins
two trees that each have a working task, the moved one stops working.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.MoveAction(ctx, ids[0], ids[1])
			})
		},
	}
	return cmd
}

// newDetachCmd creates the detach command
func newDetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "detach <id>",
		Short:             "Turn a task into the root of its own tree",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.DetachAction(ctx, id)
			})
		},
	}
	return cmd
}

// newAlsoCmd creates the also command
func newAlsoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "also <id> <parent>",
		Short: "Also show a task under another parent",
		Long: `Add a secondary parent. The task keeps its main parent and tree;
it is additionally listed under the other parent.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.AlsoUnderAction(ctx, ids[0], ids[1])
			})
		},
	}
	return cmd
}

// newLinkCmd creates the link command
func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage links between tasks",
	}
	cmd.AddCommand(newLinkRemoveCmd())
	return cmd
}

// newLinkRemoveCmd creates the link rm command
func newLinkRemoveCmd() *cobra.Command {
	var tree, dep bool

	cmd := &cobra.Command{
		Use:   "rm <from> <to>",
		Short: "Remove a tree or dependency link",
		Long: `Remove a link between two tasks.

With --tree, <from> is the child and <to> one of its parents: removing the
main parent link detaches the child, removing another parent link just drops it.
With --dep, <from> is the dependent and <to> the prerequisite.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tree == dep {
				return fmt.Errorf("pass exactly one of --tree or --dep")
			}
			ids, err := helpers.ParseTaskIDs(args)
			if err != nil {
				return err
			}
			link := engine.Link{Type: engine.LinkTree, From: ids[0], To: ids[1]}
			if dep {
				link.Type = engine.LinkDependency
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RemoveLinkAction(ctx, link)
			})
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Remove a parent/child link")
	cmd.Flags().BoolVar(&dep, "dep", false, "Remove a dependency link")

	return cmd
}
