package testing

import (
	"testing"

	"github.com/arloliu/balancer/internal/logger"
	"github.com/arloliu/balancer/types"
)

// NewTestLogger returns a Logger that writes balancer records through t.Logf.
//
// Example:
//
//	b, err := balancer.New(&cfg, items, balancer.WithLogger(balancertest.NewTestLogger(t)))
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
