package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/utils"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	var (
		parent    string
		x, y      float64
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:     "add [title...]",
		Aliases: []string{"a", "new"},
		Short:   "Add a task",
		Long: `Add a task as a new root, or as the last child of --parent.

A new child inherits its parent's tree. When no title is given you are
prompted for one. With --stdin every non-blank line of standard input
becomes its own task.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := actions.CreateOptions{
				Title:    strings.Join(args, " "),
				Position: engine.Position{X: x, Y: y},
			}
			if parent != "" {
				id, err := helpers.ParseTaskID(parent)
				if err != nil {
					return err
				}
				opts.Parent = id
			}
			titles := []string{opts.Title}
			if fromStdin {
				lines, err := utils.ReadLinesFromStdin()
				if err != nil {
					return fmt.Errorf("failed to read titles from stdin: %w", err)
				}
				if len(lines) == 0 {
					return fmt.Errorf("no titles on stdin")
				}
				titles = lines
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				for _, title := range titles {
					opts.Title = title
					if _, err := actions.CreateAction(ctx, opts); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Create the task under this task id")
	cmd.Flags().Float64Var(&x, "x", 0, "Horizontal canvas position")
	cmd.Flags().Float64Var(&y, "y", 0, "Vertical canvas position")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read one title per line from standard input")
	_ = cmd.RegisterFlagCompletionFunc("parent", helpers.CompleteTaskIDs)

	return cmd
}
