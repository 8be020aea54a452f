package actions

import (
	"fmt"
	"strings"

	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/timeutil"
	"taskmap.dev/taskmap/internal/tui/style"
)

// shortIDLength is how much of an entry id the history listing shows
const shortIDLength = 8

// UndoOptions contains options for the undo command
type UndoOptions struct {
	// To undoes every step back to and including this entry id (or unique prefix)
	To string
}

// UndoAction reverts the most recent change, or every change back to opts.To.
// It returns a short message describing what was undone.
func UndoAction(ctx *runtime.Context, opts UndoOptions) (string, error) {
	if opts.To != "" {
		steps, err := ctx.History.UndoTo(opts.To)
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("Undid %d change%s.", steps, PluralSuffix(steps != 1))
		ctx.Splog.Info("%s", msg)
		ctx.Splog.Event("undo", "steps", steps, "to", opts.To)
		return msg, nil
	}

	entry, ok, err := ctx.History.Undo()
	if err != nil {
		return "", err
	}
	if !ok {
		msg := "Nothing to undo."
		ctx.Splog.Info("%s", msg)
		return msg, nil
	}

	msg := fmt.Sprintf("Undid: %s.", entry.Description)
	ctx.Splog.Info("%s", msg)
	ctx.Splog.Event("undo", "entry", entry.ID, "description", entry.Description)
	return msg, nil
}

// RedoAction re-applies the most recently undone change
func RedoAction(ctx *runtime.Context) (string, error) {
	entry, ok, err := ctx.History.Redo()
	if err != nil {
		return "", err
	}
	if !ok {
		msg := "Nothing to redo."
		ctx.Splog.Info("%s", msg)
		return msg, nil
	}

	msg := fmt.Sprintf("Redid: %s.", entry.Description)
	ctx.Splog.Info("%s", msg)
	ctx.Splog.Event("redo", "entry", entry.ID, "description", entry.Description)
	return msg, nil
}

// HistoryAction lists the undo stack, newest first
func HistoryAction(ctx *runtime.Context) error {
	entries := ctx.History.Entries()
	if len(entries) == 0 {
		ctx.Splog.Info("No undo history available.")
		return nil
	}

	lines := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		id := e.ID
		if len(id) > shortIDLength {
			id = id[:shortIDLength]
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			style.ColorYellow(id),
			e.Description,
			style.ColorDim(timeutil.FormatTimeAgo(e.Timestamp)),
		))
	}
	if ctx.History.CanRedo() {
		lines = append(lines, style.ColorDim("(redo available)"))
	}

	ctx.Splog.Page(strings.Join(lines, "\n"))
	ctx.Splog.Newline()
	return nil
}
