package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskmap",
		Short: "Taskmap keeps a map of tasks, subtasks and the dependencies between them",
		Long: `Taskmap keeps a map of tasks, subtasks and the dependencies between them.

Tasks form trees. A task can also be shown under extra parents and can depend
on other tasks anywhere in the map. Every change can be undone.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newDetachCmd())
	rootCmd.AddCommand(newAlsoCmd())
	rootCmd.AddCommand(newDepCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDoneCmd())
	rootCmd.AddCommand(newWorkCmd())
	rootCmd.AddCommand(newRepairCmd())
	rootCmd.AddCommand(newPriorityCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newPosCmd())
	rootCmd.AddCommand(newHideCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newRedoCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
