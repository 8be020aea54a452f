package actions

import (
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/runtime"
	"taskmap.dev/taskmap/internal/tui/components/tree"
)

// TreeOptions contains options for the tree command
type TreeOptions struct {
	Start engine.TaskID // engine.NoTask renders every root
	All   bool          // include hidden tasks
	Plain bool
}

// TreeAction prints the task tree
func TreeAction(ctx *runtime.Context, opts TreeOptions) error {
	if opts.Start != engine.NoTask {
		if _, err := requireTask(ctx, opts.Start); err != nil {
			return err
		}
	}

	out := tree.NewTaskTreeRenderer(ctx.Engine).Render(opts.Start, tree.RenderOptions{
		ShowHidden: opts.All,
		Plain:      opts.Plain,
	})
	if out == "" {
		if len(ctx.Engine.Roots()) == 0 {
			ctx.Splog.Info("No tasks yet. Add one with `taskmap add <title>`.")
		} else {
			ctx.Splog.Info("Every task is hidden. Use --all to show them.")
		}
		return nil
	}

	ctx.Splog.Page(out)
	ctx.Splog.Newline()
	return nil
}
