package types

import "errors"

// Sentinel errors for the balancer library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%w: ...", err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Strategy, Balancer, Config)
//   - Use consistent messages across similar error types

// Strategy errors - returned by partitioning strategies.
var (
	// ErrInvalidArgument is returned when a strategy receives a partition count below 1.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownStrategy is returned when a strategy name is not recognized.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Balancer errors - returned by the partition slot owner.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCollectionRequired is returned when the weighted collection is nil.
	ErrCollectionRequired = errors.New("weighted collection is required")

	// ErrStrategyRequired is returned when the partitioning strategy is nil.
	ErrStrategyRequired = errors.New("partitioning strategy is required")

	// ErrPartitionSizeMismatch is returned when a replacement partition does not
	// have the configured number of buckets. The published partition is left untouched.
	ErrPartitionSizeMismatch = errors.New("partition size mismatch")

	// ErrNotPublished is returned when a bucket is read before any partition was published.
	ErrNotPublished = errors.New("no partition published")

	// ErrBucketOutOfRange is returned when a bucket index is outside the partition.
	ErrBucketOutOfRange = errors.New("bucket index out of range")

	// ErrAlreadyRunning is returned when Run is called on a balancer that is already running.
	ErrAlreadyRunning = errors.New("balancer already running")
)
