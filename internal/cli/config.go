package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/actions"
	"taskmap.dev/taskmap/internal/cli/helpers"
	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/tui"
	tuiconfig "taskmap.dev/taskmap/internal/tui/config"
)

func workspaceDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.FindWorkspace(cwd)
}

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set workspace configuration",
		Long: `Get and set workspace configuration values.

Without a subcommand an interactive editor opens in a terminal and all values
are listed otherwise.

Examples:
  taskmap config get historyDepth
  taskmap config set groupingWindowMs 1000`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := workspaceDir()
			if err != nil {
				return err
			}
			splog := tui.NewSplog()
			if tui.InteractiveAllowed() {
				return tuiconfig.TUIAction(dir, splog)
			}
			return actions.ConfigListAction(dir, splog)
		},
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             "Get a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteConfigKeys,
		SilenceUsage:      true,
		RunE: func(_ *cobra.Command, args []string) error {
			dir, err := workspaceDir()
			if err != nil {
				return err
			}
			return actions.ConfigGetAction(dir, args[0], tui.NewSplog())
		},
	}
	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a configuration value",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteConfigKeys,
		SilenceUsage:      true,
		RunE: func(_ *cobra.Command, args []string) error {
			dir, err := workspaceDir()
			if err != nil {
				return err
			}
			return actions.ConfigSetAction(dir, args[0], args[1], tui.NewSplog())
		},
	}
	return cmd
}

// newConfigListCmd creates the config list command
func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List every configuration value",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := workspaceDir()
			if err != nil {
				return err
			}
			return actions.ConfigListAction(dir, tui.NewSplog())
		},
	}
	return cmd
}
