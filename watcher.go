package balancer

import (
	"cmp"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/balancer/types"
)

// Watcher detects reassignment of one bucket on the worker side.
//
// A Watcher keeps a private copy of its bucket and compares it with the
// published bucket on every Check. A change is reported iff a publish that
// altered the bucket's membership completed since the previous observation.
// Weight drift alone, or a publish that leaves the membership intact, is not
// a change.
//
// A Watcher is safe for concurrent use, though it is normally owned by the
// single worker goroutine that processes its bucket.
type Watcher[K cmp.Ordered, V types.Weighted] struct {
	balancer *Balancer[K, V]
	index    int

	mu      sync.Mutex
	cached  types.Bucket[K, V]
	synced  bool // cached holds a published bucket
	changes atomic.Uint64
}

// Index returns the bucket index this watcher tracks.
func (w *Watcher[K, V]) Index() int {
	return w.index
}

// Check compares the published bucket with the cached copy.
//
// On a membership change the cached copy is replaced by the published bucket
// and the change counter is incremented. Before the first publish Check
// always reports no change. For a watcher created before the first publish,
// that publish is a change even if the bucket is empty.
//
// Returns:
//   - bool: true if the bucket changed since the last observation
func (w *Watcher[K, V]) Check() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.balancer
	b.mu.RLock()
	if b.current == nil {
		b.mu.RUnlock()

		return false
	}

	published := b.current[w.index]
	if w.synced && published.Equal(w.cached) {
		b.mu.RUnlock()

		return false
	}
	w.cached = published.Clone()
	w.synced = true
	b.mu.RUnlock()

	w.changes.Add(1)
	b.metrics.RecordChangeObserved(w.index)
	b.logger.Debug("bucket changed", "bucket", w.index, "items", w.cached.Len(), "weight", w.cached.Weight)

	return true
}

// Current returns a copy of the cached bucket.
func (w *Watcher[K, V]) Current() Bucket[K, V] {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cached.Clone()
}

// Changes returns the number of changes observed so far.
func (w *Watcher[K, V]) Changes() uint64 {
	return w.changes.Load()
}

// Run checks the bucket on every publish notification and every interval until
// ctx is done, calling onChange with the new bucket whenever Check reports a
// change.
//
// The interval poll catches publishes whose notification was dropped.
//
// Parameters:
//   - ctx: Context controlling the loop
//   - interval: Poll interval (must be > 0)
//   - onChange: Callback for a changed bucket (may be nil)
//
// Returns:
//   - error: ErrInvalidArgument for a non-positive interval, nil once ctx is done
func (w *Watcher[K, V]) Run(ctx context.Context, interval time.Duration, onChange func(Bucket[K, V])) error {
	if interval <= 0 {
		return fmt.Errorf("%w: watch interval must be > 0, got %v", ErrInvalidArgument, interval)
	}

	published, unsubscribe := w.balancer.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		if w.Check() && onChange != nil {
			onChange(w.Current())
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-published:
			check()
		case <-ticker.C:
			check()
		}
	}
}
