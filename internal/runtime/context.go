// Package runtime provides a context type that holds the engine, history and logger
// for use throughout the application. This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskmap.dev/taskmap/internal/config"
	"taskmap.dev/taskmap/internal/engine"
	"taskmap.dev/taskmap/internal/history"
	"taskmap.dev/taskmap/internal/storage"
	"taskmap.dev/taskmap/internal/tui"
)

// Context provides access to the task graph, its history and output for commands
type Context struct {
	Context context.Context
	Engine  engine.Engine
	History *history.History
	Saver   *storage.Saver // nil for in-memory contexts
	Splog   *tui.Splog
	Dir     string // workspace directory, empty for in-memory contexts
	Config  *config.Config
	// Repair is what loading the persisted graph had to fix
	Repair engine.RepairResult
}

// Options tunes Open
type Options struct {
	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
	// Store overrides the workspace state file
	Store storage.Store
	// DisableLogFile skips the rotating log file
	DisableLogFile bool
}

// NewContext creates an in-memory context over eng with default history settings
func NewContext(eng engine.Engine) *Context {
	cfg := &config.Config{}
	return &Context{
		Context: context.Background(),
		Engine:  eng,
		History: newHistory(eng, cfg),
		Splog:   tui.NewSplog(),
		Config:  cfg,
	}
}

// GetContext opens the workspace containing the working directory
func GetContext(ctx context.Context) (*Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	dir, err := config.FindWorkspace(cwd)
	if err != nil {
		return nil, err
	}
	return Open(ctx, dir, Options{})
}

// Open loads the workspace at dir and wires persistence:
// every engine change requests a debounced save of the graph and both history stacks.
func Open(ctx context.Context, dir string, opts Options) (*Context, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	splogOpts := tui.SplogOptions{Writer: opts.Writer}
	if !opts.DisableLogFile {
		splogOpts.LogFile = tui.LogFilePath(dir)
	}
	splog, err := tui.NewSplogWithOptions(splogOpts)
	if err != nil {
		return nil, err
	}

	store := opts.Store
	if store == nil {
		store = storage.NewFileStore(config.StatePath(dir), cfg.StorageQuota())
	}

	doc, found, err := store.Load()
	if err != nil {
		_ = splog.Close()
		return nil, fmt.Errorf("failed to load task graph: %w", err)
	}

	eng := engine.NewEngine(engine.Options{})
	hist := newHistory(eng, cfg)
	var repair engine.RepairResult
	if found {
		repair, err = eng.Load(doc.Graph)
		if err != nil {
			_ = splog.Close()
			return nil, fmt.Errorf("failed to load task graph: %w", err)
		}
		hist.Import(doc.History)
	}

	saver := storage.NewSaver(store, eng, hist, storage.SaverOptions{
		Debounce: cfg.SaveDebounce(),
		TrimKeep: cfg.GetTrimKeep(),
		OnError: func(err error) {
			splog.Warn("Could not save the task graph: %v", err)
			splog.Event("save failed", "error", err)
		},
		OnTrim: func(keep int) {
			splog.Warn("Storage is full; keeping only the last %d undo steps", keep)
			splog.Event("history trimmed", "keep", keep)
		},
	})
	engine.SetOnChange(eng, saver.Request)

	c := &Context{
		Context: ctx,
		Engine:  eng,
		History: hist,
		Saver:   saver,
		Splog:   splog,
		Dir:     dir,
		Config:  cfg,
		Repair:  repair,
	}

	if repair.Changed() {
		splog.Event("working tasks repaired", "demoted", repair.Demoted, "registryFixed", repair.RegistryFixed)
		saver.Request()
	}
	splog.Debug("Loaded %d tasks from %s", len(eng.AllTasks()), dir)
	return c, nil
}

func newHistory(eng engine.Engine, cfg *config.Config) *history.History {
	return history.New(eng, history.Options{
		MaxDepth:       cfg.GetHistoryDepth(),
		GroupingWindow: cfg.GroupingWindow(),
	})
}

// Close flushes any pending save and closes the log file
func (c *Context) Close() error {
	var flushErr error
	if c.Saver != nil {
		flushErr = c.Saver.Flush()
	}
	closeErr := c.Splog.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
