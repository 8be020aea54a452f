package helpers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
)

func TestParseTaskID(t *testing.T) {
	t.Run("accepts plain and hash ids", func(t *testing.T) {
		id, err := ParseTaskID("12")
		require.NoError(t, err)
		require.Equal(t, engine.TaskID(12), id)

		id, err = ParseTaskID(" #7")
		require.NoError(t, err)
		require.Equal(t, engine.TaskID(7), id)
	})

	t.Run("rejects garbage and non-positive ids", func(t *testing.T) {
		for _, arg := range []string{"", "#", "abc", "0", "-3", "1.5"} {
			_, err := ParseTaskID(arg)
			require.Error(t, err, arg)
		}
	})

	t.Run("parses lists", func(t *testing.T) {
		ids, err := ParseTaskIDs([]string{"1", "#2"})
		require.NoError(t, err)
		require.Equal(t, []engine.TaskID{1, 2}, ids)

		_, err = ParseTaskIDs([]string{"1", "x"})
		require.ErrorContains(t, err, `"x"`)
	})
}

func TestIsRecoverable(t *testing.T) {
	require.True(t, IsRecoverable(tmerrors.NewTaskNotFoundError(3)))
	require.True(t, IsRecoverable(fmt.Errorf("wrapped: %w", tmerrors.NewCyclicDependencyError(1, 2))))
	require.True(t, IsRecoverable(tmerrors.NewInvalidRelationshipError(1, 2, "descendant")))
	require.False(t, IsRecoverable(tmerrors.ErrStorageExceeded))
	require.False(t, IsRecoverable(fmt.Errorf("boom")))
}

func TestTaskCompletions(t *testing.T) {
	got := taskCompletions([]engine.Task{{ID: 1, Title: "plan"}, {ID: 4, Title: "build it"}})
	require.Equal(t, []string{"1\tplan", "4\tbuild it"}, got)
}
