package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arloliu/balancer"
	"gopkg.in/yaml.v3"
)

// Config is the root demo configuration.
type Config struct {
	Balancer balancer.Config `yaml:"balancer"`
	Items    ItemsConfig     `yaml:"items"`
	Workers  WorkersConfig   `yaml:"workers"`
	Mutation MutationConfig  `yaml:"mutation"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Log      LogConfig       `yaml:"log"`
}

// ItemsConfig configures the generated weighted collection.
type ItemsConfig struct {
	Count        int    `yaml:"count"`        // Number of items, keyed "1".."count"
	Distribution string `yaml:"distribution"` // "parabola", "harmonic", "poisson", "uniform", "exponential"
	Seed         uint64 `yaml:"seed"`         // Seed for random distributions
}

// WorkersConfig configures the bucket watchers.
type WorkersConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"` // e.g., "50ms"
}

// MutationConfig configures the weight mutation rounds.
type MutationConfig struct {
	Rounds int           `yaml:"rounds"` // Number of mutate-then-rebalance rounds
	Key    string        `yaml:"key"`    // Item whose weight changes; empty picks the heaviest
	Weight int64         `yaml:"weight"` // New weight of the item
	Settle time.Duration `yaml:"settle"` // Time workers get to observe each step
}

// MetricsConfig configures Prometheus exposition.
type MetricsConfig struct {
	Addr      string `yaml:"addr"`      // Listen address, empty disables the HTTP server
	Namespace string `yaml:"namespace"` // Metric namespace
}

// LogConfig configures the demo logger.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// LoadConfig loads the demo configuration from a YAML file.
//
// An empty path returns the defaults.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Config: Configuration with defaults applied
//   - error: Read, decode or validation error
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults applies default values to configuration fields that are not set.
func applyDefaults(cfg *Config) {
	if cfg.Balancer.Partitions == 0 {
		cfg.Balancer.Partitions = 5
	}
	balancer.SetDefaults(&cfg.Balancer)

	if cfg.Items.Count == 0 {
		cfg.Items.Count = 13
	}
	if cfg.Items.Distribution == "" {
		cfg.Items.Distribution = "parabola"
	}
	if cfg.Items.Seed == 0 {
		cfg.Items.Seed = 1
	}

	if cfg.Workers.PollInterval == 0 {
		cfg.Workers.PollInterval = 50 * time.Millisecond
	}

	if cfg.Mutation.Rounds == 0 {
		cfg.Mutation.Rounds = 1
	}
	if cfg.Mutation.Settle == 0 {
		cfg.Mutation.Settle = 4 * cfg.Workers.PollInterval
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "balancer_demo"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// validate checks the demo configuration.
func validate(cfg *Config) error {
	if err := cfg.Balancer.Validate(); err != nil {
		return err
	}

	if cfg.Items.Count < 0 {
		return fmt.Errorf("items.count must be >= 0, got %d", cfg.Items.Count)
	}

	if cfg.Workers.PollInterval <= 0 {
		return errors.New("workers.poll_interval must be > 0")
	}

	if cfg.Mutation.Rounds < 0 {
		return fmt.Errorf("mutation.rounds must be >= 0, got %d", cfg.Mutation.Rounds)
	}

	if cfg.Mutation.Weight < 0 {
		return fmt.Errorf("mutation.weight must be >= 0, got %d", cfg.Mutation.Weight)
	}

	return nil
}
