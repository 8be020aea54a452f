package tui

import (
	"os"
	"path/filepath"
)

// LogFilePath returns the log file for a workspace.
// TASKMAP_LOG_FILE overrides the default of <workspace>/taskmap.log.
func LogFilePath(workspaceDir string) string {
	if customPath := os.Getenv("TASKMAP_LOG_FILE"); customPath != "" {
		return customPath
	}
	return filepath.Join(workspaceDir, "taskmap.log")
}
