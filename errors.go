package balancer

import "github.com/arloliu/balancer/types"

// Sentinel errors returned by the Balancer and the strategies it drives.
var (
	// ErrInvalidArgument is returned when a partition count below 1 is requested.
	ErrInvalidArgument = types.ErrInvalidArgument

	// ErrUnknownStrategy is returned when a strategy name is not recognized.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrCollectionRequired is returned when the weighted collection is nil.
	ErrCollectionRequired = types.ErrCollectionRequired

	// ErrStrategyRequired is returned when the partitioning strategy is nil.
	ErrStrategyRequired = types.ErrStrategyRequired

	// ErrPartitionSizeMismatch is returned when a replacement partition does not
	// have the configured number of buckets.
	ErrPartitionSizeMismatch = types.ErrPartitionSizeMismatch

	// ErrNotPublished is returned when a bucket is read before the first publish.
	ErrNotPublished = types.ErrNotPublished

	// ErrBucketOutOfRange is returned when a bucket index is outside the partition.
	ErrBucketOutOfRange = types.ErrBucketOutOfRange

	// ErrAlreadyRunning is returned when Run is called twice concurrently.
	ErrAlreadyRunning = types.ErrAlreadyRunning
)
