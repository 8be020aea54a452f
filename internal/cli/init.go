package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a task map in the current directory",
		Long: `Create a .taskmap directory in the current directory with a default config.

Set TASKMAP_DIR to put the workspace somewhere else. Running init again is harmless.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			splog := tui.NewSplog()
			_, err = actions.InitAction(cwd, splog)
			return err
		},
	}
	return cmd
}
