// Command balancer-demo partitions a generated weighted collection, starts one
// watcher per bucket and walks through mutate-then-rebalance rounds, printing
// the partition and the changes every worker observed.
//
// Usage:
//
//	balancer-demo -config configs/demo.yaml
//	balancer-demo -partitions 3 -items 20 -distribution poisson -metrics-addr :9090
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/arloliu/balancer"
	"github.com/arloliu/balancer/internal/logging"
	"github.com/arloliu/balancer/internal/metrics"
	"github.com/arloliu/balancer/internal/weightgen"
	"github.com/arloliu/balancer/source"
	"github.com/arloliu/balancer/strategy"
	"github.com/arloliu/balancer/types"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults when empty)")
	partitions := flag.Int("partitions", 0, "Override balancer.partitions")
	items := flag.Int("items", 0, "Override items.count")
	distribution := flag.String("distribution", "", "Override items.distribution")
	metricsAddr := flag.String("metrics-addr", "", "Override metrics.addr")
	hold := flag.Bool("hold", false, "Keep running (and serving metrics) until interrupted")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *partitions != 0 {
		cfg.Balancer.Partitions = *partitions
	}
	if *items != 0 {
		cfg.Items.Count = *items
	}
	if *distribution != "" {
		cfg.Items.Distribution = *distribution
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewSlogText(os.Stderr, cfg.Log.Level)
	reg := prometheus.NewRegistry()

	if cfg.Metrics.Addr != "" {
		server := newMetricsServer(cfg.Metrics.Addr, reg, logger)
		server.Start()
		defer func() {
			if err := server.Shutdown(); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	if err := run(ctx, cfg, os.Stdout, logger, reg); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}

	if *hold {
		logger.Info("holding until interrupted")
		<-ctx.Done()
	}
}

// run executes the demo against out.
func run(ctx context.Context, cfg *Config, out io.Writer, logger types.Logger, reg prometheus.Registerer) error {
	gen, err := weightgen.ByName(cfg.Items.Distribution, cfg.Items.Seed)
	if err != nil {
		return err
	}

	weights := gen.Generate(cfg.Items.Count)
	collection := source.NewMap[string, *source.Item]()
	for i, w := range weights {
		collection.Set(strconv.Itoa(i+1), source.NewItem(w))
	}

	_, _ = fmt.Fprintf(out, "%d %s items over %d buckets (%s)\n",
		collection.Len(), cfg.Items.Distribution, cfg.Balancer.Partitions, cfg.Balancer.Strategy)

	hooks := &balancer.Hooks{
		OnError: func(_ context.Context, err error) error {
			logger.Error("publish failed", "error", err)
			return nil
		},
	}

	b, err := balancer.New[string, *source.Item](&cfg.Balancer, collection,
		balancer.WithLogger(logger),
		balancer.WithMetrics(metrics.NewPrometheus(reg, cfg.Metrics.Namespace)),
		balancer.WithHooks(hooks),
	)
	if err != nil {
		return fmt.Errorf("failed to create balancer: %w", err)
	}

	if _, err := b.Rebalance(ctx); err != nil {
		return err
	}
	initial, version := b.Partition()
	if err := printPartition(out, fmt.Sprintf("Partition v%d", version), initial); err != nil {
		return err
	}

	if cfg.Balancer.Strategy != strategy.NameFlat {
		flat, err := strategy.CreateFlatPartition(collection, cfg.Balancer.Partitions)
		if err != nil {
			return err
		}
		if err := printPartition(out, "Flat baseline (not published)", flat); err != nil {
			return err
		}
	}

	watchers, stop, err := startWorkers(ctx, b, cfg.Workers.PollInterval)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			logger.Warn("worker stopped with error", "error", err)
		}
	}()

	for round := 1; round <= cfg.Mutation.Rounds; round++ {
		key := cfg.Mutation.Key
		if key == "" {
			key = heaviestKey(collection)
		}
		item, ok := collection.Get(key)
		if !ok {
			return fmt.Errorf("mutation key %q not in collection", key)
		}

		previous := item.Weight()
		item.SetWeight(cfg.Mutation.Weight)
		_, _ = fmt.Fprintf(out, "\nRound %d: item %s weight %d -> %d\n", round, key, previous, cfg.Mutation.Weight)

		if err := settle(ctx, cfg.Mutation.Settle); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "Before repartition:")
		if err := printWatchers(out, watchers); err != nil {
			return err
		}

		if _, err := b.Rebalance(ctx); err != nil {
			return err
		}
		if err := settle(ctx, cfg.Mutation.Settle); err != nil {
			return err
		}

		p, version := b.Partition()
		if err := printPartition(out, fmt.Sprintf("Partition v%d", version), p); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "After repartition:")
		if err := printWatchers(out, watchers); err != nil {
			return err
		}
	}

	return nil
}

// startWorkers runs one watcher goroutine per bucket. The returned stop func
// cancels the workers and reports the first watcher error.
func startWorkers(
	ctx context.Context,
	b *balancer.Balancer[string, *source.Item],
	interval time.Duration,
) ([]*itemWatcher, func() error, error) {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	watchers := make([]*itemWatcher, b.Partitions())

	for i := range watchers {
		w, err := b.Watch(i)
		if err != nil {
			cancel()
			_ = g.Wait()

			return nil, nil, err
		}
		watchers[i] = w

		g.Go(func() error {
			return w.Run(gctx, interval, nil)
		})
	}

	stop := func() error {
		cancel()

		return g.Wait()
	}

	return watchers, stop, nil
}

// heaviestKey returns the key of the heaviest item, first in key order on ties.
func heaviestKey(c *source.Map[string, *source.Item]) string {
	ordered := strategy.AssignToOrderedList(c)
	if len(ordered) == 0 {
		return ""
	}

	return ordered[0].Key
}

// settle gives the workers time to observe the latest step.
func settle(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
