package balancer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arloliu/balancer/source"
	"github.com/arloliu/balancer/test/testutil"
	balancertest "github.com/arloliu/balancer/testing"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Check(t *testing.T) {
	ctx := context.Background()
	items := testutil.ParabolaItems(13)
	recorder := balancertest.NewRecordingMetrics()
	b := newTestBalancer(t, items, 5, WithMetrics(recorder))

	early, err := b.Watch(1)
	require.NoError(t, err)
	require.Equal(t, 1, early.Index())

	t.Run("no change before the first publish", func(t *testing.T) {
		require.False(t, early.Check())
		require.Zero(t, early.Changes())
		require.Empty(t, early.Current().Members)
	})

	_, err = b.Rebalance(ctx)
	require.NoError(t, err)

	t.Run("first publish is a change for an early watcher", func(t *testing.T) {
		require.True(t, early.Check())
		require.Equal(t, uint64(1), early.Changes())
		require.Equal(t, []string{"12", "3"}, early.Current().Keys())

		require.False(t, early.Check())
		require.Equal(t, uint64(1), early.Changes())
	})

	late, err := b.Watch(1)
	require.NoError(t, err)

	t.Run("watcher created after publish starts in sync", func(t *testing.T) {
		require.False(t, late.Check())
		require.Equal(t, []string{"12", "3"}, late.Current().Keys())
	})

	t.Run("republish with unchanged membership", func(t *testing.T) {
		_, err := b.Rebalance(ctx)
		require.NoError(t, err)

		require.False(t, late.Check())
		require.Zero(t, late.Changes())
	})

	item, _ := items.Get("3")
	item.SetWeight(0)

	t.Run("weight change without repartition", func(t *testing.T) {
		require.False(t, late.Check())
		require.Zero(t, late.Changes())
	})

	t.Run("repartition after weight change", func(t *testing.T) {
		_, err := b.Rebalance(ctx)
		require.NoError(t, err)

		require.True(t, late.Check())
		require.Equal(t, uint64(1), late.Changes())
		require.Equal(t, []string{"12", "7"}, late.Current().Keys())
		require.EqualValues(t, 247, late.Current().Weight)
	})

	require.Equal(t, map[int]int{1: 2}, recorder.Changes())
}

func TestWatcher_EmptyBucketFirstPublish(t *testing.T) {
	b := newTestBalancer(t, testutil.ParabolaItems(3), 5)

	w, err := b.Watch(4)
	require.NoError(t, err)
	require.False(t, w.Check())

	_, err = b.Rebalance(context.Background())
	require.NoError(t, err)

	require.True(t, w.Check())
	require.Equal(t, uint64(1), w.Changes())
	require.Empty(t, w.Current().Members)

	require.False(t, w.Check())
	require.Equal(t, uint64(1), w.Changes())
}

func TestWatcher_CurrentIsACopy(t *testing.T) {
	b := newTestBalancer(t, testutil.ParabolaItems(13), 5)
	_, err := b.Rebalance(context.Background())
	require.NoError(t, err)

	w, err := b.Watch(0)
	require.NoError(t, err)

	current := w.Current()
	current.Members[0].Key = "mutated"

	require.Equal(t, []string{"13", "7"}, w.Current().Keys())
	require.False(t, w.Check())
}

func TestWatcher_Run(t *testing.T) {
	t.Run("invalid interval", func(t *testing.T) {
		b := newTestBalancer(t, testutil.ParabolaItems(3), 2)
		w, err := b.Watch(0)
		require.NoError(t, err)

		err = w.Run(context.Background(), 0, nil)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("reacts to publish notifications", func(t *testing.T) {
		items := testutil.ParabolaItems(13)
		b := newTestBalancer(t, items, 5)
		_, err := b.Rebalance(context.Background())
		require.NoError(t, err)

		w, err := b.Watch(2)
		require.NoError(t, err)

		changed := make(chan Bucket[string, *source.Item], 1)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		// A long poll interval leaves publish notifications as the trigger.
		go func() {
			done <- w.Run(ctx, time.Hour, func(bucket Bucket[string, *source.Item]) {
				changed <- bucket
			})
		}()

		item, _ := items.Get("3")
		item.SetWeight(0)

		// Run subscribes asynchronously; keep publishing until the change is seen.
		var bucket Bucket[string, *source.Item]
		require.Eventually(t, func() bool {
			_, _ = b.Rebalance(context.Background())
			select {
			case bucket = <-changed:
				return true
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond)

		require.Equal(t, []string{"11", "8", "3"}, bucket.Keys())

		cancel()
		require.NoError(t, <-done)
	})
}

// TestWatcher_WorkerScenario runs one watcher goroutine per bucket while the
// control goroutine mutates a weight and then repartitions.
func TestWatcher_WorkerScenario(t *testing.T) {
	const workers = 5

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items := testutil.ParabolaItems(13)
	b := newTestBalancer(t, items, workers)
	_, err := b.Rebalance(ctx)
	require.NoError(t, err)
	before, _ := b.Partition()

	var (
		wg       sync.WaitGroup
		callback atomic.Int64
	)
	watchers := make([]*Watcher[string, *source.Item], workers)
	for i := range workers {
		w, err := b.Watch(i)
		require.NoError(t, err)
		watchers[i] = w

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Run(ctx, time.Millisecond, func(Bucket[string, *source.Item]) {
				callback.Add(1)
			})
		}()
	}

	totalChanges := func() uint64 {
		var total uint64
		for _, w := range watchers {
			total += w.Changes()
		}

		return total
	}

	// Mutating a weight alone is invisible to the workers.
	item, _ := items.Get("3")
	item.SetWeight(0)
	require.Never(t, func() bool { return totalChanges() > 0 }, 100*time.Millisecond, 5*time.Millisecond)

	// Repartitioning moves items in every bucket.
	_, err = b.Rebalance(ctx)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return totalChanges() == workers }, 2*time.Second, 5*time.Millisecond)

	after, _ := b.Partition()
	for i, w := range watchers {
		require.Equal(t, uint64(1), w.Changes(), "worker %d", i)
		require.False(t, before[i].Equal(after[i]), "bucket %d", i)
		require.True(t, after[i].Equal(w.Current()), "worker %d", i)
	}

	cancel()
	wg.Wait()
	require.Equal(t, int64(workers), callback.Load())
}

func BenchmarkWatcher_Check(b *testing.B) {
	cfg := Config{Partitions: 16}
	bal, err := New[string, *source.Item](&cfg, testutil.ParabolaItems(1000))
	require.NoError(b, err)
	_, err = bal.Rebalance(context.Background())
	require.NoError(b, err)

	w, err := bal.Watch(3)
	require.NoError(b, err)

	b.ResetTimer()
	for b.Loop() {
		_ = w.Check()
	}
}
