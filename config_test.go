package balancer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/balancer/internal/logger"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 1, cfg.Partitions)
	require.Equal(t, "balanced", cfg.Strategy)
	require.Equal(t, time.Duration(0), cfg.RebalanceInterval)
	require.Equal(t, 16, cfg.SubscriberBuffer)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			Partitions:        8,
			Strategy:          "flat",
			RebalanceInterval: 5 * time.Second,
			SubscriberBuffer:  2,
		}
		SetDefaults(&cfg)

		require.Equal(t, 8, cfg.Partitions)
		require.Equal(t, "flat", cfg.Strategy)
		require.Equal(t, 5*time.Second, cfg.RebalanceInterval)
		require.Equal(t, 2, cfg.SubscriberBuffer)
	})

	t.Run("negative values are left for Validate", func(t *testing.T) {
		cfg := Config{Partitions: -1}
		SetDefaults(&cfg)

		require.Equal(t, -1, cfg.Partitions)
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "flat strategy", mutate: func(cfg *Config) { cfg.Strategy = "flat" }},
		{name: "strategy is case insensitive", mutate: func(cfg *Config) { cfg.Strategy = "Balanced" }},
		{name: "zero partitions", mutate: func(cfg *Config) { cfg.Partitions = 0 }, wantErr: "partitions must be >= 1"},
		{name: "unknown strategy", mutate: func(cfg *Config) { cfg.Strategy = "random" }, wantErr: `strategy "random"`},
		{name: "negative interval", mutate: func(cfg *Config) { cfg.RebalanceInterval = -time.Second }, wantErr: "rebalanceInterval"},
		{name: "zero buffer", mutate: func(cfg *Config) { cfg.SubscriberBuffer = 0 }, wantErr: "subscriberBuffer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ValidateWithWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RebalanceInterval = time.Millisecond

	require.NotPanics(t, func() {
		cfg.ValidateWithWarnings(logger.NewTest(t))
	})
}

// TestConfig_YAML demonstrates that time.Duration works directly with YAML unmarshaling
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
partitions: 5
strategy: flat
rebalanceInterval: 1m30s
subscriberBuffer: 4
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Partitions)
	require.Equal(t, "flat", cfg.Strategy)
	require.Equal(t, 90*time.Second, cfg.RebalanceInterval)
	require.Equal(t, 4, cfg.SubscriberBuffer)
}

func TestParseConfig(t *testing.T) {
	t.Run("partial document gets defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("partitions: 3\n"))
		require.NoError(t, err)

		require.Equal(t, 3, cfg.Partitions)
		require.Equal(t, "balanced", cfg.Strategy)
		require.Equal(t, 16, cfg.SubscriberBuffer)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := ParseConfig([]byte("partitions: -2\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := ParseConfig([]byte("partitions: [1, 2\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := ParseConfig([]byte("rebalanceInterval: soon\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balancer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("partitions: 7\nrebalanceInterval: 250ms\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Partitions)
	require.Equal(t, 250*time.Millisecond, cfg.RebalanceInterval)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
