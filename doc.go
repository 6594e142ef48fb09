// Package balancer partitions a keyed collection of weighted items into a
// fixed number of buckets whose aggregate weights are approximately equal.
//
// The partitioning itself lives in the strategy package: a deterministic
// Longest-Processing-Time-first greedy heuristic (strategy.CreateBalancedPartition)
// and a count-balanced round-robin baseline (strategy.CreateFlatPartition).
// This package adds the Balancer, which owns the currently published partition
// and implements the repartition-and-replace protocol: a new partition is
// always computed off to the side and swapped in under a write lock, so readers
// never observe a half-built partition.
//
// # Quick Start
//
//	items := source.NewMap[string, *source.Item]()
//	items.Set("orders", source.NewItem(120))
//	items.Set("users", source.NewItem(80))
//	items.Set("events", source.NewItem(200))
//
//	cfg := balancer.DefaultConfig()
//	cfg.Partitions = 2
//
//	b, err := balancer.New(&cfg, items)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := b.Rebalance(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	bucket, _ := b.Bucket(0)
//	fmt.Println(bucket.Weight, bucket.Keys())
//
// # Concurrency Model
//
// Item weights may change at any time; the Balancer never reacts to a weight
// change on its own. Only Rebalance, Replace and Run publish a new partition.
// Workers read their bucket through Bucket or a Watcher, both of which take the
// shared read lock, and detect reassignment by comparing bucket membership:
//
//	w, _ := b.Watch(workerIndex)
//	go w.Run(ctx, time.Second, func(bucket balancer.Bucket[string, *source.Item]) {
//	    reload(bucket.Keys())
//	})
//
// See the examples/ directory for complete working programs.
package balancer
