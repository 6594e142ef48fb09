package balancer

// Option configures a Balancer with optional dependencies.
type Option func(*balancerOptions)

// balancerOptions holds optional Balancer configuration.
type balancerOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
}

// WithHooks sets event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	hooks := &balancer.Hooks{
//	    OnPublished: func(ctx context.Context, version uint64, weights []int64) error {
//	        return report(version, weights)
//	    },
//	}
//	b, err := balancer.New(&cfg, items, balancer.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *balancerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "app")
//	b, err := balancer.New(&cfg, items, balancer.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *balancerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	b, err := balancer.New(&cfg, items, balancer.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *balancerOptions) {
		o.logger = logger
	}
}
