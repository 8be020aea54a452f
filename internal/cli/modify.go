package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
)

// newPriorityCmd creates the priority command
func newPriorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority <id> [normal|medium|high]",
		Short: "Set or cycle a task's priority",
		Long: `Set a task's priority. Without a level the priority cycles
normal → medium → high → normal.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return []string{"normal", "medium", "high"}, cobra.ShellCompDirectiveNoFileComp
			}
			return helpers.CompleteTaskIDs(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			var level *engine.Priority
			if len(args) == 2 {
				p, err := engine.ParsePriority(args[1])
				if err != nil {
					return err
				}
				level = &p
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.PriorityAction(ctx, id, level)
				return err
			})
		},
	}
	return cmd
}

// newRenameCmd creates the rename command
func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <id> [title...]",
		Short: "Change a task's title",
		Long: `Change a task's title. Without a title your editor opens with the current one.

Renames of the same task in quick succession are undone as a single step.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RenameAction(ctx, actions.RenameOptions{
					ID:    id,
					Title: strings.Join(args[1:], " "),
				})
			})
		},
	}
	return cmd
}

// newPosCmd creates the pos command
func newPosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "pos <id> <x> <y>",
		Short:             "Set a task's canvas position",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q", args[1])
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q", args[2])
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.PositionAction(ctx, id, engine.Position{X: x, Y: y})
			})
		},
	}
	return cmd
}

// newHideCmd creates the hide command
func newHideCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "hide <id>",
		Short: "Hide a task's subtree from the tree view",
		Long: `Collapse a task in the tree view. Its subtree is summarized as "(+N hidden)".
Use --off to show it again; tree --all ignores hiding.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTaskIDs,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := helpers.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.HideAction(ctx, id, !off)
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Show the task again")

	return cmd
}
