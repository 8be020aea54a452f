// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/storage"
)

// CompleteTaskIDs is a helper for cobra.ValidArgsFunction that returns every task id
// with its title as the description. It reads the state file without opening a session.
func CompleteTaskIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	dir, err := config.FindWorkspace(cwd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	doc, found, err := storage.NewFileStore(config.StatePath(dir), cfg.StorageQuota()).Load()
	if err != nil || !found {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return taskCompletions(doc.Graph.Tasks), cobra.ShellCompDirectiveNoFileComp
}

func taskCompletions(tasks []engine.Task) []string {
	completions := make([]string, 0, len(tasks))
	for _, t := range tasks {
		completions = append(completions, fmt.Sprintf("%d\t%s", t.ID, t.Title))
	}
	return completions
}

// CompleteConfigKeys completes configuration keys
func CompleteConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}
