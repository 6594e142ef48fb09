// Package hooks provides default balancer hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/balancer/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, uint64, []int64) error = (*NopHooks)(nil).OnPublished
	_ func(context.Context, error) error           = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}

	return types.Hooks{
		OnPublished: h.OnPublished,
		OnError:     h.OnError,
	}
}

// WithDefaults returns a copy of hooks where every nil callback is replaced by
// its no-op counterpart. A nil hooks pointer yields NewNop().
func WithDefaults(hooks *types.Hooks) types.Hooks {
	out := NewNop()
	if hooks == nil {
		return out
	}

	if hooks.OnPublished != nil {
		out.OnPublished = hooks.OnPublished
	}
	if hooks.OnError != nil {
		out.OnError = hooks.OnError
	}

	return out
}

// OnPublished is a no-op implementation.
func (h *NopHooks) OnPublished(_ context.Context, _ uint64, _ []int64) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
