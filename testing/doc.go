// Package testing provides test utilities for code built on the balancer library.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - NewTestLogger: Logger writing to the test log
//   - RecordingMetrics: MetricsCollector that records every call for assertions
//
// Example usage:
//
//	import (
//	    "testing"
//	    balancertest "github.com/arloliu/balancer/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    rec := balancertest.NewRecordingMetrics()
//	    b, _ := balancer.New(&cfg, items, balancer.WithMetrics(rec))
//	    // drive b ...
//	    require.Equal(t, []uint64{1}, rec.Publishes())
//	}
package testing
