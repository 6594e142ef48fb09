// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/arloliu/balancer/types"

// NopMetrics discards every partition, publish and watcher measurement.
// The balancer falls back to it when WithMetrics is not given.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop returns a collector that records nothing.
//
// Example:
//
//	b, err := balancer.New(&cfg, items, balancer.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (*NopMetrics) RecordPartitionDuration(string, float64) {}
func (*NopMetrics) RecordPartitionResult(string, bool)      {}
func (*NopMetrics) RecordBucketWeights([]int64)             {}
func (*NopMetrics) RecordPublish(uint64)                    {}
func (*NopMetrics) RecordPublishRejected(string)            {}
func (*NopMetrics) RecordSubscriberDropped()                {}
func (*NopMetrics) RecordChangeObserved(int)                {}
