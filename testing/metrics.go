package testing

import (
	"maps"
	"slices"
	"sync"

	"github.com/arloliu/balancer/types"
)

// PartitionRun is one recorded partition computation.
type PartitionRun struct {
	Strategy string
	Duration float64
	Success  bool
}

// RecordingMetrics implements types.MetricsCollector by recording every call.
//
// All accessors return copies and are safe to call while the balancer is running.
type RecordingMetrics struct {
	mu        sync.Mutex
	runs      []PartitionRun
	weights   []int64
	publishes []uint64
	rejected  []string
	dropped   int
	changes   map[int]int
}

var _ types.MetricsCollector = (*RecordingMetrics)(nil)

// NewRecordingMetrics creates an empty recorder.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{changes: make(map[int]int)}
}

// RecordPartitionDuration records the duration of a computation; it is paired
// with the following RecordPartitionResult call.
func (r *RecordingMetrics) RecordPartitionDuration(strategy string, duration float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, PartitionRun{Strategy: strategy, Duration: duration})
}

// RecordPartitionResult records the outcome of the last computation.
func (r *RecordingMetrics) RecordPartitionResult(strategy string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.runs)
	if n > 0 && r.runs[n-1].Strategy == strategy {
		r.runs[n-1].Success = success
		return
	}
	r.runs = append(r.runs, PartitionRun{Strategy: strategy, Success: success})
}

// RecordBucketWeights records the latest bucket weights.
func (r *RecordingMetrics) RecordBucketWeights(weights []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weights = slices.Clone(weights)
}

// RecordPublish records a published version.
func (r *RecordingMetrics) RecordPublish(version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishes = append(r.publishes, version)
}

// RecordPublishRejected records a rejected publish.
func (r *RecordingMetrics) RecordPublishRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, reason)
}

// RecordSubscriberDropped records a version dropped for a slow subscriber.
func (r *RecordingMetrics) RecordSubscriberDropped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped++
}

// RecordChangeObserved records a bucket change seen by a watcher.
func (r *RecordingMetrics) RecordChangeObserved(bucket int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes[bucket]++
}

// Runs returns all recorded partition computations in order.
func (r *RecordingMetrics) Runs() []PartitionRun {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.runs)
}

// Results returns the success flag of every recorded computation in order.
func (r *RecordingMetrics) Results() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]bool, len(r.runs))
	for i, run := range r.runs {
		results[i] = run.Success
	}

	return results
}

// BucketWeights returns the most recently recorded bucket weights.
func (r *RecordingMetrics) BucketWeights() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.weights)
}

// Publishes returns every published version in order.
func (r *RecordingMetrics) Publishes() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.publishes)
}

// Rejected returns the reason of every rejected publish in order.
func (r *RecordingMetrics) Rejected() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.rejected)
}

// Dropped returns the number of versions dropped for slow subscribers.
func (r *RecordingMetrics) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dropped
}

// Changes returns the observed change count per bucket index.
func (r *RecordingMetrics) Changes() map[int]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return maps.Clone(r.changes)
}
