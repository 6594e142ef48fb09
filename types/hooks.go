package types

import "context"

// Hooks defines callbacks for balancer events.
//
// All hooks are optional and called asynchronously in background goroutines
// so they never block the publish path. Hook errors are logged and otherwise
// ignored.
//
// Example:
//
//	hooks := &balancer.Hooks{
//	    OnPublished: func(ctx context.Context, version uint64, weights []int64) error {
//	        log.Printf("partition v%d published: %v", version, weights)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnPublished is called after a new partition has been swapped into the slot.
	// weights holds the aggregate weight of every bucket, by bucket index.
	OnPublished func(ctx context.Context, version uint64, weights []int64) error

	// OnError is called when a rebalance or replacement fails and nothing was published.
	OnError func(ctx context.Context, err error) error
}
