package balancer

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/arloliu/balancer/strategy"
	"gopkg.in/yaml.v3"
)

// Config is the configuration for the Balancer.
//
// All duration fields accept standard Go duration strings like "30s", "5m", "1h".
type Config struct {
	// Partitions is the number of buckets every published partition has.
	// Fixed for the lifetime of a Balancer; Replace rejects partitions of any
	// other size.
	Partitions int `yaml:"partitions"`

	// Strategy names the built-in partitioning strategy: "balanced" (greedy
	// LPT, default) or "flat" (round robin). Ignored by NewWithStrategy.
	Strategy string `yaml:"strategy"`

	// RebalanceInterval is how often Run recomputes and republishes the
	// partition. Zero means Run publishes once and then only waits for
	// cancellation; explicit Rebalance calls are still allowed.
	RebalanceInterval time.Duration `yaml:"rebalanceInterval"`

	// SubscriberBuffer is the channel buffer of each Subscribe channel.
	// Versions published while a subscriber's buffer is full are dropped for
	// that subscriber.
	SubscriberBuffer int `yaml:"subscriberBuffer"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Partitions:        1,
		Strategy:          strategy.NameBalanced,
		RebalanceInterval: 0, // on demand only
		SubscriberBuffer:  16,
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Partitions == 0 {
		cfg.Partitions = defaults.Partitions
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.SubscriberBuffer == 0 {
		cfg.SubscriberBuffer = defaults.SubscriberBuffer
	}
	// Note: RebalanceInterval of 0 is valid (on demand only), so we don't apply default
}

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - Partitions >= 1
//   - Strategy is one of strategy.Names()
//   - RebalanceInterval >= 0
//   - SubscriberBuffer >= 1
//
// Returns:
//   - error: Error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if err := cfg.validateLimits(); err != nil {
		return err
	}

	name := strings.ToLower(strings.TrimSpace(cfg.Strategy))
	if !slices.Contains(strategy.Names(), name) {
		return fmt.Errorf("%w: strategy %q is not one of %s",
			ErrInvalidConfig, cfg.Strategy, strings.Join(strategy.Names(), ", "))
	}

	return nil
}

// validateLimits checks every rule of Validate except the strategy name, which
// only applies to the built-in strategies.
func (cfg *Config) validateLimits() error {
	if cfg.Partitions < 1 {
		return fmt.Errorf("%w: partitions must be >= 1, got %d", ErrInvalidConfig, cfg.Partitions)
	}

	if cfg.RebalanceInterval < 0 {
		return fmt.Errorf("%w: rebalanceInterval must be >= 0, got %v", ErrInvalidConfig, cfg.RebalanceInterval)
	}

	if cfg.SubscriberBuffer < 1 {
		return fmt.Errorf("%w: subscriberBuffer must be >= 1, got %d", ErrInvalidConfig, cfg.SubscriberBuffer)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but questionable values.
//
// This is called after Validate() in New() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.RebalanceInterval > 0 && cfg.RebalanceInterval < 100*time.Millisecond {
		logger.Warn(
			"RebalanceInterval is very short, every tick is a full recomputation",
			"interval", cfg.RebalanceInterval,
			"recommended", "1s or higher",
		)
	}

	if cfg.Partitions == 1 {
		logger.Warn("Partitions is 1, every item lands in the same bucket")
	}
}

// ParseConfig decodes a YAML document, applies defaults and validates the result.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: Parsed configuration with defaults applied
//   - error: Decode error or error wrapping ErrInvalidConfig
//
// Example:
//
//	cfg, err := balancer.ParseConfig([]byte("partitions: 5\nstrategy: flat\n"))
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - Config: Parsed configuration with defaults applied
//   - error: I/O, decode or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return ParseConfig(data)
}
