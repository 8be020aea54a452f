package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/tui"
	"taskmap.dev/taskmap/internal/tui/style"
)

// InitAction creates the workspace under root
func InitAction(root string, splog *tui.Splog) (string, error) {
	dir, existed, err := config.Init(root)
	if err != nil {
		return "", err
	}
	if existed {
		splog.Info("Workspace already initialized at %s.", dir)
	} else {
		splog.Info("Initialized an empty task map in %s.", dir)
		splog.Tip("Add your first task with `taskmap add <title>`.")
	}
	return dir, nil
}

// ConfigListAction prints all configuration values
func ConfigListAction(dir string, splog *tui.Splog) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lines := make([]string, 0, len(config.Keys()))
	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s: %s", style.ColorCyan(key), value))
	}

	splog.Page(strings.Join(lines, "\n"))
	splog.Newline()
	return nil
}

// ConfigGetAction prints one configuration value
func ConfigGetAction(dir, key string, splog *tui.Splog) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	splog.Page(value)
	splog.Newline()
	return nil
}

// ConfigSetAction stores one configuration value
func ConfigSetAction(dir, key, value string, splog *tui.Splog) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(dir, cfg); err != nil {
		return err
	}
	splog.Info("Set %s to %s.", key, value)
	return nil
}
