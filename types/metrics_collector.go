package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called concurrently from the control path and from worker
// goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	StrategyMetrics
	PublishMetrics
	WatcherMetrics
}

// StrategyMetrics defines metrics for partition computation.
type StrategyMetrics interface {
	// RecordPartitionDuration records the time taken to compute a partition.
	//
	// Parameters:
	//   - strategy: Strategy name ("balanced", "flat", or a custom name)
	//   - duration: Time taken in seconds
	RecordPartitionDuration(strategy string, duration float64)

	// RecordPartitionResult records a partition computation outcome.
	//
	// Parameters:
	//   - strategy: Strategy name
	//   - success: true if the partition was computed, false otherwise
	RecordPartitionResult(strategy string, success bool)

	// RecordBucketWeights records the aggregate weight of each bucket of the
	// most recently published partition.
	//
	// Parameters:
	//   - weights: Aggregate weight by bucket index
	RecordBucketWeights(weights []int64)
}

// PublishMetrics defines metrics for the partition slot.
type PublishMetrics interface {
	// RecordPublish records a successful publication.
	//
	// Parameters:
	//   - version: Version of the published partition
	RecordPublish(version uint64)

	// RecordPublishRejected records a rejected publication.
	//
	// Parameters:
	//   - reason: Rejection reason ("size_mismatch", "strategy_error")
	RecordPublishRejected(reason string)

	// RecordSubscriberDropped records a version notification dropped because a
	// subscriber channel was full.
	RecordSubscriberDropped()
}

// WatcherMetrics defines metrics for worker-side change detection.
type WatcherMetrics interface {
	// RecordChangeObserved records a worker observing that its bucket changed.
	//
	// Parameters:
	//   - bucket: Index of the bucket that changed
	RecordChangeObserved(bucket int)
}
