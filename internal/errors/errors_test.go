package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	tmerrors "taskmap.dev/taskmap/internal/errors"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Run("task not found", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", tmerrors.NewTaskNotFoundError(7))
		require.ErrorIs(t, err, tmerrors.ErrTaskNotFound)
		require.Contains(t, err.Error(), "#7 does not exist")

		var typed *tmerrors.TaskNotFoundError
		require.True(t, errors.As(err, &typed))
		require.Equal(t, 7, typed.ID)
	})

	t.Run("invalid relationship", func(t *testing.T) {
		err := tmerrors.NewInvalidRelationshipError(1, 2, "a task cannot be its own parent")
		require.ErrorIs(t, err, tmerrors.ErrInvalidRelationship)
		require.NotErrorIs(t, err, tmerrors.ErrCyclicDependency)
	})

	t.Run("cyclic dependency", func(t *testing.T) {
		err := tmerrors.NewCyclicDependencyError(3, 4)
		require.ErrorIs(t, err, tmerrors.ErrCyclicDependency)
		require.Contains(t, err.Error(), "#4 already depends on #3")

		self := tmerrors.NewCyclicDependencyError(5, 5)
		require.Contains(t, self.Error(), "itself")
	})

	t.Run("storage exceeded", func(t *testing.T) {
		err := tmerrors.NewStorageExceededError(2048, 1024)
		require.ErrorIs(t, err, tmerrors.ErrStorageExceeded)
		require.Contains(t, err.Error(), "2048")
	})
}
