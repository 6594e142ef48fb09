package logger

import (
	"testing"

	"github.com/arloliu/balancer/types"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	var _ types.Logger = logger

	require.NotPanics(t, func() {
		logger.Debug("partition computed", "buckets", 5)
		logger.Info("partition published", "version", 1)
		logger.Warn("replacement rejected", "want", 5, "got", 4)
		logger.Error("rebalance failed", "error", "boom")
		logger.Fatal("unreachable", "key", "value") // Should NOT exit
	})
}

func TestNopLogger_OddArguments(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Debug("")
		logger.Info("", nil)
		logger.Error("message", "single")
	})
}

func TestFormatKeyValues(t *testing.T) {
	require.Equal(t, "", formatKeyValues(nil))
	require.Equal(t, " bucket=2 weight=247", formatKeyValues([]any{"bucket", 2, "weight", 247}))
	require.Equal(t, " version=3 dangling=<missing>", formatKeyValues([]any{"version", 3, "dangling"}))
}

func TestTestLogger(t *testing.T) {
	logger := NewTest(t)

	var _ types.Logger = logger

	require.NotPanics(t, func() {
		logger.Debug("debug", "k", "v")
		logger.Info("info")
		logger.Warn("warn", "k")
		logger.Error("error", "k", 1)
	})
}

func BenchmarkNopLogger(b *testing.B) {
	logger := NewNop()

	for b.Loop() {
		logger.Debug("benchmark message", "bucket", 1, "weight", 42)
	}
}
