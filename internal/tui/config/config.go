// Package config provides TUI components for configuration management.
package config

import (
	"errors"
	"fmt"

	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/tui"
)

const exitOption = "exit"

// TUIAction provides an interactive editor for the workspace configuration
func TUIAction(dir string, splog *tui.Splog) error {
	for {
		cfg, err := config.Load(dir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		options := make([]tui.SelectOption, 0, len(config.Keys())+1)
		for _, key := range config.Keys() {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			options = append(options, tui.SelectOption{
				Label: fmt.Sprintf("%s: %s", key, value),
				Value: key,
			})
		}
		options = append(options, tui.SelectOption{Label: "Exit", Value: exitOption})

		selected, err := tui.PromptSelect("Select a configuration option to edit:", options, 0)
		if err != nil {
			if errors.Is(err, tui.ErrCanceled) {
				return nil
			}
			return err
		}
		if selected == exitOption {
			return nil
		}

		current, _ := cfg.Get(selected)
		value, err := tui.PromptTextInput(fmt.Sprintf("Enter %s (current: %s):", selected, current), current)
		if err != nil {
			if errors.Is(err, tui.ErrCanceled) {
				continue
			}
			return err
		}
		if value == "" || value == current {
			continue
		}

		if err := cfg.Set(selected, value); err != nil {
			splog.Warn("Failed to set %s: %v", selected, err)
			continue
		}
		if err := config.Save(dir, cfg); err != nil {
			splog.Warn("Failed to save config: %v", err)
			continue
		}
		splog.Info("Set %s to %s", selected, value)
	}
}
