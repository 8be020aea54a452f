package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function.
// Missing tasks and rejected relationships are reported as warnings; the graph is
// unchanged in those cases. Pending saves are flushed before returning.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) (err error) {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ctx.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := fn(ctx); err != nil {
		if IsRecoverable(err) {
			ctx.Splog.Warn("%v", err)
			return nil
		}
		return err
	}
	return nil
}

// IsRecoverable reports whether err is a rejected operation that left the graph untouched
func IsRecoverable(err error) bool {
	return errors.Is(err, tmerrors.ErrTaskNotFound) ||
		errors.Is(err, tmerrors.ErrInvalidRelationship) ||
		errors.Is(err, tmerrors.ErrCyclicDependency)
}

// ParseTaskID parses a task id written as 12 or #12
func ParseTaskID(arg string) (engine.TaskID, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || n <= 0 {
		return engine.NoTask, fmt.Errorf("invalid task id %q", arg)
	}
	return engine.TaskID(n), nil
}

// ParseTaskIDs parses every argument as a task id
func ParseTaskIDs(args []string) ([]engine.TaskID, error) {
	ids := make([]engine.TaskID, 0, len(args))
	for _, arg := range args {
		id, err := ParseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
