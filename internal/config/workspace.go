package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tmerrors "taskmap.dev/taskmap/internal/errors"
)

const (
	// DirName is the workspace directory created by `taskmap init`
	DirName = ".taskmap"
	// EnvDir overrides workspace discovery with an explicit directory
	EnvDir = "TASKMAP_DIR"

	configFile = "config.json"
	stateFile  = "state.json"
)

// ConfigPath returns the config file inside a workspace directory
func ConfigPath(dir string) string {
	return filepath.Join(dir, configFile)
}

// StatePath returns the persisted task graph inside a workspace directory
func StatePath(dir string) string {
	return filepath.Join(dir, stateFile)
}

// FindWorkspace locates the workspace directory. TASKMAP_DIR wins when set;
// otherwise start and each of its parents is checked for a .taskmap directory.
func FindWorkspace(start string) (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		if !isDir(dir) {
			return "", fmt.Errorf("%s=%s: %w", EnvDir, dir, tmerrors.ErrNotInitialized)
		}
		return filepath.Abs(dir)
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(current, DirName)
		if isDir(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no %s directory in %s or any parent (run `taskmap init`): %w", DirName, start, tmerrors.ErrNotInitialized)
		}
		current = parent
	}
}

// Init creates a workspace under root (or at TASKMAP_DIR) and writes a default
// config if none exists. It returns the workspace directory and whether it already existed.
func Init(root string) (dir string, existed bool, err error) {
	dir = os.Getenv(EnvDir)
	if dir == "" {
		dir = filepath.Join(root, DirName)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve workspace path: %w", err)
	}

	existed = isDir(dir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", false, fmt.Errorf("failed to create workspace: %w", err)
	}
	if _, statErr := os.Stat(ConfigPath(dir)); errors.Is(statErr, os.ErrNotExist) {
		if err := Save(dir, &Config{}); err != nil {
			return "", false, err
		}
	}
	return dir, existed, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
