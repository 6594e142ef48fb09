package metrics

import (
	"testing"

	"github.com/arloliu/balancer/types"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	m := NewNop()

	var _ types.MetricsCollector = m

	require.NotPanics(t, func() {
		m.RecordPartitionDuration("balanced", 0.001)
		m.RecordPartitionResult("flat", false)
		m.RecordBucketWeights([]int64{1, 2, 3})
		m.RecordBucketWeights(nil)
		m.RecordPublish(7)
		m.RecordPublishRejected("size_mismatch")
		m.RecordSubscriberDropped()
		m.RecordChangeObserved(3)
	})
}
