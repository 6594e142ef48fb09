package stress_test

import (
	"context"
	"math/rand/v2"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/balancer"
	"github.com/arloliu/balancer/internal/weightgen"
	"github.com/arloliu/balancer/source"
	"github.com/arloliu/balancer/test/testutil"
	"github.com/stretchr/testify/require"
)

// requireStressEnabled skips the test unless long stress tests are explicitly enabled.
//
// Enable by setting environment variable BALANCER_STRESS=1 when invoking `go test`.
// Example:
//
//	BALANCER_STRESS=1 go test -v -timeout 20m ./test/stress
func requireStressEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("BALANCER_STRESS") != "1" {
		t.Skip("Skipping long stress/perf test (set BALANCER_STRESS=1 to run)")
	}
}

// loadConfig describes one stress run.
type loadConfig struct {
	Items        int
	Buckets      int
	Duration     time.Duration
	Rebalance    time.Duration
	PollInterval time.Duration
	Distribution string
}

// loadResult summarizes one stress run.
type loadResult struct {
	Versions uint64
	Changes  uint64
	Reads    int64
}

// runLoad drives a balancer with one watcher per bucket, a reader per bucket
// and a mutator goroutine for cfg.Duration, checking partition invariants on
// every read.
func runLoad(t *testing.T, cfg loadConfig) loadResult {
	t.Helper()

	gen, err := weightgen.ByName(cfg.Distribution, 42)
	require.NoError(t, err)

	items := source.NewMap[string, *source.Item]()
	for i, w := range gen.Generate(cfg.Items) {
		items.Set("item-"+strconv.Itoa(i), source.NewItem(w))
	}

	bcfg := balancer.Config{Partitions: cfg.Buckets, RebalanceInterval: cfg.Rebalance}
	b, err := balancer.New[string, *source.Item](&bcfg, items)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	var (
		wg    sync.WaitGroup
		reads = make([]int64, cfg.Buckets)
	)

	runErr := make(chan error, 1)
	go func() { runErr <- b.Run(ctx) }()
	require.Eventually(t, func() bool { return b.Version() > 0 }, 5*time.Second, time.Millisecond)

	watchers := make([]*balancer.Watcher[string, *source.Item], cfg.Buckets)
	for i := range cfg.Buckets {
		w, err := b.Watch(i)
		require.NoError(t, err)
		watchers[i] = w

		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = w.Run(ctx, cfg.PollInterval, nil)
		}()
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				bucket, err := b.Bucket(i)
				if err != nil {
					t.Errorf("bucket %d: %v", i, err)
					return
				}
				var sum int64
				for _, m := range bucket.Members {
					sum += m.Weight
				}
				if sum != bucket.Weight {
					t.Errorf("bucket %d weight %d != member sum %d", i, bucket.Weight, sum)
					return
				}
				reads[i]++
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewPCG(7, 11))
		keys := items.Keys()
		for ctx.Err() == nil {
			item, _ := items.Get(keys[rng.IntN(len(keys))])
			item.SetWeight(rng.Int64N(1000))
		}
	}()

	wg.Wait()
	require.NoError(t, <-runErr)

	p, version := b.Partition()
	require.Equal(t, cfg.Buckets, p.Len())
	testutil.AssertCoverage(t, p, items)
	testutil.AssertWeightsConsistent(t, p)

	result := loadResult{Versions: version}
	for i, w := range watchers {
		result.Changes += w.Changes()
		result.Reads += reads[i]
	}

	t.Logf("items=%d buckets=%d versions=%d changes=%d reads=%d",
		cfg.Items, cfg.Buckets, result.Versions, result.Changes, result.Reads)

	return result
}
