package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"taskmap.dev/taskmap/internal/tui/components/tree"
)

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// RunBrowser runs the interactive task browser until the user quits.
// Console logging is silenced while the browser owns the terminal.
func RunBrowser(ctrl tree.Controller, splog *Splog) error {
	if err := checkInteractiveAllowed(); err != nil {
		return err
	}

	if splog != nil {
		wasQuiet := splog.IsQuiet()
		splog.SetQuiet(true)
		defer splog.SetQuiet(wasQuiet)
	}

	p := tea.NewProgram(tree.NewModel(ctrl), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
