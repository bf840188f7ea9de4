package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The global logger can only initialize once per process, so the file-backed
// behaviors share one TestMain-style setup via subtests.
func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xm-debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	t.Run("writes leveled categorized entries", func(t *testing.T) {
		Debug(CatRun, "visiting node", "id", "A_X")
		Info(CatFilter, "filter set", "spec", "A*")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "[DEBUG] [run] visiting node id=A_X")
		require.Contains(t, string(data), "[INFO] [filter] filter set spec=A*")
	})

	t.Run("odd field count is flagged", func(t *testing.T) {
		Warn(CatConfig, "lonely", "key")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "key=<missing>")
	})

	t.Run("broker publishes every entry", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sub := Broker().Subscribe(ctx)

		Error(CatHistory, "record failed")

		select {
		case ev := <-sub:
			require.Contains(t, ev.Payload, "[ERROR] [history] record failed")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for log event")
		}
	})

	t.Run("min level filters", func(t *testing.T) {
		SetMinLevel(LevelError)
		defer SetMinLevel(LevelDebug)

		Debug(CatRun, "below threshold marker")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NotContains(t, string(data), "below threshold marker")
	})

	t.Run("disabled logger writes nothing", func(t *testing.T) {
		SetEnabled(false)
		defer SetEnabled(true)

		Info(CatRun, "disabled marker")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NotContains(t, string(data), "disabled marker")
	})
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}
