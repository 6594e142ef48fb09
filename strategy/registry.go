package strategy

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/arloliu/balancer/types"
)

// Names lists the built-in strategy names accepted by New.
func Names() []string {
	return []string{NameBalanced, NameFlat}
}

// New returns the built-in strategy registered under name.
//
// Names are matched case-insensitively; an empty name selects Balanced.
//
// Parameters:
//   - name: Strategy name ("balanced" or "flat")
//   - log: Logger passed to the strategy (no-op if nil)
//
// Returns:
//   - types.Strategy[K, V]: The requested strategy
//   - error: types.ErrUnknownStrategy for any other name
func New[K cmp.Ordered, V types.Weighted](name string, log types.Logger) (types.Strategy[K, V], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameBalanced:
		return NewBalanced[K, V](log), nil
	case NameFlat:
		return NewFlat[K, V](log), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", types.ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
}
