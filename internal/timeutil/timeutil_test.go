package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "just now", formatTimeAgo(now.Add(-3*time.Second), now))
	require.Equal(t, "just now", formatTimeAgo(now.Add(time.Minute), now))
	require.Equal(t, "42 seconds ago", formatTimeAgo(now.Add(-42*time.Second), now))
	require.Equal(t, "1 minute ago", formatTimeAgo(now.Add(-time.Minute), now))
	require.Equal(t, "5 minutes ago", formatTimeAgo(now.Add(-5*time.Minute), now))
	require.Equal(t, "3 hours ago", formatTimeAgo(now.Add(-3*time.Hour), now))
	require.Equal(t, "1 day ago", formatTimeAgo(now.Add(-25*time.Hour), now))
	require.Equal(t, "2026-03-01", formatTimeAgo(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), now))
}
