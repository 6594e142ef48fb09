package balancer

import (
	"sync"

	"github.com/arloliu/balancer/types"
)

// versionSubscriber is one Subscribe channel.
type versionSubscriber struct {
	ch     chan uint64
	mu     sync.Mutex
	closed bool
}

// trySend sends a published version to the subscriber without blocking.
//
// Returns false if the version was dropped because the buffer is full.
func (s *versionSubscriber) trySend(version uint64, metricsCollector types.PublishMetrics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}

	select {
	case s.ch <- version:
		return true
	default:
		// Subscriber is slow; it will get the next version.
		metricsCollector.RecordSubscriberDropped()

		return false
	}
}

// close safely closes the subscriber's channel.
func (s *versionSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
