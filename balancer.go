package balancer

import (
	"cmp"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/balancer/internal/hooks"
	"github.com/arloliu/balancer/internal/logger"
	"github.com/arloliu/balancer/internal/metrics"
	"github.com/arloliu/balancer/strategy"
	"github.com/arloliu/balancer/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Balancer owns the published partition of a weighted collection.
//
// Balancer implements the repartition-and-replace protocol:
//   - A new partition is always computed in full, off to the side, without
//     holding the slot lock
//   - The finished partition is swapped into the slot under the write lock and
//     the version is bumped
//   - Readers (Bucket, Partition, Watcher) take the shared read lock and only
//     ever see a complete partition
//
// Weight changes of the underlying items are never picked up on their own;
// only Rebalance, Replace and Run publish.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Rebalance and Replace are serialized; a later call never publishes a
//     partition computed before an earlier one
//   - Published partitions are immutable; readers receive clones
//
// Lifecycle:
//   - Create with New() or NewWithStrategy()
//   - Call Rebalance() on demand, or Run() for periodic rebalancing
//   - Workers read their bucket via Bucket() or Watch()
type Balancer[K cmp.Ordered, V types.Weighted] struct {
	cfg        Config
	collection types.Collection[K, V]
	strategy   types.Strategy[K, V]

	// Optional dependencies
	hooks   types.Hooks
	metrics MetricsCollector
	logger  Logger

	// Serializes compute-and-publish so versions follow computation order
	publishMu sync.Mutex

	// Published slot
	mu      sync.RWMutex
	current types.Partition[K, V]
	version uint64

	// Fan-out to subscribers
	subscribers      *xsync.Map[uint64, *versionSubscriber]
	nextSubscriberID atomic.Uint64

	running atomic.Bool
}

// New creates a Balancer using the built-in strategy named by cfg.Strategy.
//
// Returns a concrete *Balancer following the "accept interfaces, return structs"
// principle.
//
// Parameters:
//   - cfg: Configuration (defaults are filled in place)
//   - collection: Weighted collection to partition
//   - opts: Optional configuration (hooks, metrics, logger)
//
// Returns:
//   - *Balancer[K, V]: Initialized balancer with nothing published yet
//   - error: ErrInvalidConfig, ErrCollectionRequired or ErrUnknownStrategy
//
// Example:
//
//	cfg := balancer.Config{Partitions: 5}
//	b, err := balancer.New(&cfg, items)
func New[K cmp.Ordered, V types.Weighted](cfg *Config, collection Collection[K, V], opts ...Option) (*Balancer[K, V], error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	options := applyOptions(opts)
	s, err := strategy.New[K, V](cfg.Strategy, options.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return newBalancer(cfg, collection, s, options)
}

// NewWithStrategy creates a Balancer driven by a custom strategy.
//
// cfg.Strategy is ignored. The strategy must return exactly cfg.Partitions
// buckets; any other result is rejected at publish time.
//
// Parameters:
//   - cfg: Configuration (defaults are filled in place)
//   - collection: Weighted collection to partition
//   - s: Partitioning strategy
//   - opts: Optional configuration (hooks, metrics, logger)
//
// Returns:
//   - *Balancer[K, V]: Initialized balancer with nothing published yet
//   - error: ErrInvalidConfig, ErrCollectionRequired or ErrStrategyRequired
func NewWithStrategy[K cmp.Ordered, V types.Weighted](
	cfg *Config,
	collection Collection[K, V],
	s Strategy[K, V],
	opts ...Option,
) (*Balancer[K, V], error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if s == nil {
		return nil, ErrStrategyRequired
	}

	return newBalancer(cfg, collection, s, applyOptions(opts))
}

// applyOptions applies opts and provides safe defaults for optional
// dependencies to avoid nil checks everywhere.
func applyOptions(opts []Option) *balancerOptions {
	options := &balancerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	if options.logger == nil {
		options.logger = logger.NewNop()
	}

	return options
}

func newBalancer[K cmp.Ordered, V types.Weighted](
	cfg *Config,
	collection Collection[K, V],
	s Strategy[K, V],
	options *balancerOptions,
) (*Balancer[K, V], error) {
	if collection == nil {
		return nil, ErrCollectionRequired
	}

	SetDefaults(cfg)
	if err := cfg.validateLimits(); err != nil {
		return nil, err
	}
	cfg.ValidateWithWarnings(options.logger)

	return &Balancer[K, V]{
		cfg:         *cfg,
		collection:  collection,
		strategy:    s,
		hooks:       hooks.WithDefaults(options.hooks),
		metrics:     options.metrics,
		logger:      options.logger,
		subscribers: xsync.NewMap[uint64, *versionSubscriber](),
	}, nil
}

// Rebalance recomputes the partition from the current item weights and
// publishes it.
//
// The computation runs without holding the slot lock; readers keep seeing the
// previous partition until the swap. On failure nothing is published.
//
// Parameters:
//   - ctx: Context for cancellation; a cancelled context publishes nothing
//
// Returns:
//   - uint64: Version of the newly published partition
//   - error: Strategy error, ErrPartitionSizeMismatch or ctx.Err()
func (b *Balancer[K, V]) Rebalance(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	name := b.strategy.Name()
	start := time.Now()
	partition, err := b.strategy.Partition(b.collection, b.cfg.Partitions)
	b.metrics.RecordPartitionDuration(name, time.Since(start).Seconds())
	b.metrics.RecordPartitionResult(name, err == nil)
	if err != nil {
		b.metrics.RecordPublishRejected("strategy_error")
		b.logger.Error("partition computation failed", "strategy", name, "error", err)
		b.fireError(ctx, err)

		return 0, fmt.Errorf("rebalance failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		b.logger.Debug("rebalance cancelled before publish", "strategy", name)

		return 0, err
	}

	return b.publish(ctx, partition)
}

// Replace publishes a partition computed by the caller.
//
// The partition must have exactly Config.Partitions buckets. A partition of any
// other size is rejected with ErrPartitionSizeMismatch and the published slot
// is left untouched; it is never truncated or padded.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - partition: Replacement partition (cloned before publishing)
//
// Returns:
//   - uint64: Version of the newly published partition
//   - error: ErrPartitionSizeMismatch if the bucket count differs
func (b *Balancer[K, V]) Replace(ctx context.Context, partition Partition[K, V]) (uint64, error) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	return b.publish(ctx, partition.Clone())
}

// publish swaps partition into the slot.
func (b *Balancer[K, V]) publish(ctx context.Context, partition types.Partition[K, V]) (uint64, error) {
	if partition.Len() != b.cfg.Partitions {
		err := fmt.Errorf("%w: expected %d buckets, got %d", ErrPartitionSizeMismatch, b.cfg.Partitions, partition.Len())
		b.metrics.RecordPublishRejected("size_mismatch")
		b.logger.Warn("partition size mismatch, keeping current partition",
			"expected", b.cfg.Partitions,
			"got", partition.Len(),
		)
		b.fireError(ctx, err)

		return 0, err
	}

	weights := partition.Weights()

	b.mu.Lock()
	b.current = partition
	b.version++
	version := b.version
	b.mu.Unlock()

	b.metrics.RecordPublish(version)
	b.metrics.RecordBucketWeights(weights)
	b.logger.Info("partition published",
		"version", version,
		"buckets", partition.Len(),
		"items", partition.Items(),
		"spread", partition.Spread(),
	)
	b.logger.Debug("partition weights", "version", version, "weights", weights, "fingerprint", partition.Fingerprint())

	b.notifySubscribers(version)
	b.firePublished(ctx, version, weights)

	return version, nil
}

// Partition returns a copy of the published partition.
//
// Returns:
//   - Partition[K, V]: Clone of the current partition, nil before the first publish
//   - uint64: Version of the returned partition, 0 before the first publish
func (b *Balancer[K, V]) Partition() (Partition[K, V], uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.current.Clone(), b.version
}

// Bucket returns a copy of one bucket of the published partition.
//
// Parameters:
//   - index: Bucket index in [0, Config.Partitions)
//
// Returns:
//   - Bucket[K, V]: Clone of the bucket
//   - error: ErrBucketOutOfRange or ErrNotPublished
func (b *Balancer[K, V]) Bucket(index int) (Bucket[K, V], error) {
	if err := b.checkIndex(index); err != nil {
		return Bucket[K, V]{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return Bucket[K, V]{}, ErrNotPublished
	}

	return b.current[index].Clone(), nil
}

// Version returns the version of the published partition (0 before the first publish).
func (b *Balancer[K, V]) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.version
}

// Partitions returns the configured number of buckets.
func (b *Balancer[K, V]) Partitions() int {
	return b.cfg.Partitions
}

// StrategyName returns the name of the strategy driving Rebalance.
func (b *Balancer[K, V]) StrategyName() string {
	return b.strategy.Name()
}

// Subscribe returns a channel that receives the version of every published partition.
//
// The channel is buffered (Config.SubscriberBuffer). Versions published while
// the buffer is full are dropped for this subscriber only; read the slot with
// Partition or Bucket to catch up.
//
// Returns:
//   - <-chan uint64: Channel of published versions
//   - func(): Unsubscribe function; closes the channel
//
// Example:
//
//	ch, unsubscribe := b.Subscribe()
//	defer unsubscribe()
//	for version := range ch {
//	    fmt.Printf("partition v%d published\n", version)
//	}
func (b *Balancer[K, V]) Subscribe() (<-chan uint64, func()) {
	id := b.nextSubscriberID.Add(1)

	sub := &versionSubscriber{ch: make(chan uint64, b.cfg.SubscriberBuffer)}
	b.subscribers.Store(id, sub)

	unsubscribe := func() {
		b.removeSubscriber(id)
	}

	return sub.ch, unsubscribe
}

// removeSubscriber removes a subscriber and closes its channel.
func (b *Balancer[K, V]) removeSubscriber(id uint64) {
	if sub, ok := b.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}

// notifySubscribers fans a published version out to all subscribers.
func (b *Balancer[K, V]) notifySubscribers(version uint64) {
	b.subscribers.Range(func(id uint64, sub *versionSubscriber) bool {
		if !sub.trySend(version, b.metrics) {
			b.logger.Debug("subscriber buffer full, version dropped", "subscriber", id, "version", version)
		}

		return true
	})
}

// Run publishes an initial partition and then rebalances every
// Config.RebalanceInterval until ctx is done.
//
// Failed periodic rebalances are logged and leave the previous partition
// published; Run keeps going. Only one Run may be active at a time.
//
// Parameters:
//   - ctx: Context controlling the loop
//
// Returns:
//   - error: Initial rebalance error, ErrAlreadyRunning, or nil once ctx is done
func (b *Balancer[K, V]) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer b.running.Store(false)

	if _, err := b.Rebalance(ctx); err != nil {
		return fmt.Errorf("initial rebalance: %w", err)
	}

	if b.cfg.RebalanceInterval == 0 {
		<-ctx.Done()

		return nil
	}

	ticker := time.NewTicker(b.cfg.RebalanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// Errors are already logged and reported via hooks.
			_, _ = b.Rebalance(ctx)
		}
	}
}

// Watch returns a Watcher that tracks one bucket of the published partition.
//
// The watcher starts from the bucket published at the time of the call (an
// empty bucket if nothing is published yet).
//
// Parameters:
//   - index: Bucket index in [0, Config.Partitions)
//
// Returns:
//   - *Watcher[K, V]: Watcher for the bucket
//   - error: ErrBucketOutOfRange for a bad index
func (b *Balancer[K, V]) Watch(index int) (*Watcher[K, V], error) {
	if err := b.checkIndex(index); err != nil {
		return nil, err
	}

	w := &Watcher[K, V]{balancer: b, index: index}
	b.mu.RLock()
	if b.current != nil {
		w.cached = b.current[index].Clone()
		w.synced = true
	}
	b.mu.RUnlock()

	return w, nil
}

func (b *Balancer[K, V]) checkIndex(index int) error {
	if index < 0 || index >= b.cfg.Partitions {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrBucketOutOfRange, index, b.cfg.Partitions)
	}

	return nil
}

// firePublished runs the OnPublished hook in the background.
func (b *Balancer[K, V]) firePublished(ctx context.Context, version uint64, weights []int64) {
	go func() {
		if err := b.hooks.OnPublished(ctx, version, weights); err != nil {
			b.logger.Warn("OnPublished hook failed", "version", version, "error", err)
		}
	}()
}

// fireError runs the OnError hook in the background.
func (b *Balancer[K, V]) fireError(ctx context.Context, cause error) {
	go func() {
		if err := b.hooks.OnError(ctx, cause); err != nil {
			b.logger.Warn("OnError hook failed", "cause", cause, "error", err)
		}
	}()
}
