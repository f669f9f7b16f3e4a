package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopianhadi/adminkit/core/config"
)

// Each test uses its own config type because loaded values are cached per type.

func TestLoad(t *testing.T) {
	t.Run("reads values from environment", func(t *testing.T) {
		type loadCfg struct {
			Endpoint string `env:"TEST_CFG_ENDPOINT" envDefault:"http://localhost"`
			Limit    int    `env:"TEST_CFG_LIMIT" envDefault:"10"`
		}

		t.Setenv("TEST_CFG_ENDPOINT", "https://store.example.com")

		var cfg loadCfg
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://store.example.com", cfg.Endpoint)
		assert.Equal(t, 10, cfg.Limit)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		type requiredCfg struct {
			Key string `env:"TEST_CFG_REQUIRED_KEY,required"`
		}

		var cfg requiredCfg
		err := config.Load(&cfg)
		require.Error(t, err)
	})

	t.Run("caches loaded value per type", func(t *testing.T) {
		type cachedCfg struct {
			Value string `env:"TEST_CFG_CACHED" envDefault:"first"`
		}

		t.Setenv("TEST_CFG_CACHED", "first")

		var first cachedCfg
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_CACHED", "second")

		var second cachedCfg
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Value, second.Value)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		type nilCfg struct{}
		var cfg *nilCfg
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		type mustCfg struct {
			Key string `env:"TEST_CFG_MUST_KEY,required"`
		}

		assert.Panics(t, func() {
			var cfg mustCfg
			config.MustLoad(&cfg)
		})
	})
}
