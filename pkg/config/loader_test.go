package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/config"
)

// Each test declares its own struct type because Load caches by type for the
// life of the process.

func TestLoadDefaults(t *testing.T) {
	type limitsEnv struct {
		QueryTimeout time.Duration `env:"TEST_LIMITS_QUERY_TIMEOUT" envDefault:"5s"`
		FlagCacheTTL time.Duration `env:"TEST_LIMITS_FLAG_CACHE_TTL" envDefault:"30s"`
	}

	var cfg limitsEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 30*time.Second, cfg.FlagCacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	type plansEnv struct {
		CatalogPath string `env:"TEST_PLANS_CATALOG_PATH" envDefault:"plans.yml"`
	}

	t.Setenv("TEST_PLANS_CATALOG_PATH", "/etc/oabprep/plans.yml")

	var cfg plansEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/etc/oabprep/plans.yml", cfg.CatalogPath)
}

func TestLoadCachesFirstValue(t *testing.T) {
	type cachedEnv struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	var first cachedEnv
	require.NoError(t, config.Load(&first))
	require.Equal(t, "first", first.Value)

	t.Setenv("TEST_CACHED_VALUE", "second")

	var again cachedEnv
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value, "same type returns the cached parse")
}

func TestLoadNilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[struct{}](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadMissingRequired(t *testing.T) {
	type requiredEnv struct {
		ConnURL string `env:"TEST_REQUIRED_CONN_URL,required"`
	}

	var cfg requiredEnv
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoadPanics(t *testing.T) {
	type mustEnv struct {
		Secret string `env:"TEST_MUST_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg mustEnv
		config.MustLoad(&cfg)
	})
}
