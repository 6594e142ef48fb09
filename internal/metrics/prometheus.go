package metrics

import (
	"strconv"
	"sync"

	"github.com/arloliu/balancer/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a PrometheusCollector that is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Strategy metrics
	partitionDuration *prometheus.HistogramVec
	partitionResults  *prometheus.CounterVec
	bucketWeights     *prometheus.GaugeVec
	bucketSpread      prometheus.Gauge

	// Publish metrics
	publishedVersion  prometheus.Gauge
	publishes         prometheus.Counter
	publishRejected   *prometheus.CounterVec
	subscriberDropped prometheus.Counter

	// Watcher metrics
	changesObserved *prometheus.CounterVec

	// bucketCount tracks how many bucket series are currently exported so that
	// series for buckets that no longer exist can be removed.
	mu          sync.Mutex
	bucketCount int
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "balancer" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "balancer"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.partitionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "partition_duration_seconds",
			Help:      "Time spent computing a partition, by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"strategy"})

		p.partitionResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "partitions_total",
			Help:      "Partition computations by strategy and result (success,failure).",
		}, []string{"strategy", "result"})

		p.bucketWeights = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "bucket_weight",
			Help:      "Aggregate weight of each bucket of the published partition.",
		}, []string{"bucket"})

		p.bucketSpread = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "bucket_weight_spread",
			Help:      "Difference between the heaviest and lightest bucket of the published partition.",
		})

		p.publishedVersion = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "version",
			Help:      "Version of the currently published partition.",
		})

		p.publishes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "publishes_total",
			Help:      "Total partitions swapped into the shared slot.",
		})

		p.publishRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "publish_rejected_total",
			Help:      "Publications skipped by reason (size_mismatch,strategy_error).",
		}, []string{"reason"})

		p.subscriberDropped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "subscriber_notifications_dropped_total",
			Help:      "Version notifications dropped because a subscriber was not keeping up.",
		})

		p.changesObserved = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "watcher",
			Name:      "changes_observed_total",
			Help:      "Bucket changes observed by workers, by bucket index.",
		}, []string{"bucket"})

		p.reg.MustRegister(
			p.partitionDuration,
			p.partitionResults,
			p.bucketWeights,
			p.bucketSpread,
			p.publishedVersion,
			p.publishes,
			p.publishRejected,
			p.subscriberDropped,
			p.changesObserved,
		)
	})
}

// StrategyMetrics implementation

// RecordPartitionDuration observes the partition computation time in seconds.
func (p *PrometheusCollector) RecordPartitionDuration(strategy string, duration float64) {
	p.ensureRegistered()
	p.partitionDuration.WithLabelValues(strategy).Observe(duration)
}

// RecordPartitionResult increments the partition outcome counter.
func (p *PrometheusCollector) RecordPartitionResult(strategy string, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "failure"
	}
	p.partitionResults.WithLabelValues(strategy, result).Inc()
}

// RecordBucketWeights sets one gauge per bucket and the spread gauge.
func (p *PrometheusCollector) RecordBucketWeights(weights []int64) {
	p.ensureRegistered()

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := len(weights); i < p.bucketCount; i++ {
		p.bucketWeights.DeleteLabelValues(strconv.Itoa(i))
	}
	p.bucketCount = len(weights)

	if len(weights) == 0 {
		p.bucketSpread.Set(0)

		return
	}

	lo, hi := weights[0], weights[0]
	for i, w := range weights {
		p.bucketWeights.WithLabelValues(strconv.Itoa(i)).Set(float64(w))
		lo = min(lo, w)
		hi = max(hi, w)
	}
	p.bucketSpread.Set(float64(hi - lo))
}

// PublishMetrics implementation

// RecordPublish sets the published version and increments the publish counter.
func (p *PrometheusCollector) RecordPublish(version uint64) {
	p.ensureRegistered()
	p.publishedVersion.Set(float64(version))
	p.publishes.Inc()
}

// RecordPublishRejected increments the rejected publication counter.
func (p *PrometheusCollector) RecordPublishRejected(reason string) {
	p.ensureRegistered()
	p.publishRejected.WithLabelValues(reason).Inc()
}

// RecordSubscriberDropped increments the dropped notification counter.
func (p *PrometheusCollector) RecordSubscriberDropped() {
	p.ensureRegistered()
	p.subscriberDropped.Inc()
}

// WatcherMetrics implementation

// RecordChangeObserved increments the change counter for a bucket.
func (p *PrometheusCollector) RecordChangeObserved(bucket int) {
	p.ensureRegistered()
	p.changesObserved.WithLabelValues(strconv.Itoa(bucket)).Inc()
}
