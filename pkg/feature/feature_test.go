package feature_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/feature"
)

func TestMemoryProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing flag", func(t *testing.T) {
		t.Parallel()

		p := feature.NewMemoryProvider()
		_, err := p.IsEnabled(ctx, "nope")
		assert.ErrorIs(t, err, feature.ErrFlagNotFound)
	})

	t.Run("seeded flag", func(t *testing.T) {
		t.Parallel()

		p := feature.NewMemoryProvider(feature.Flag{Name: "valve", Enabled: true})
		on, err := p.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.True(t, on)
	})

	t.Run("toggle", func(t *testing.T) {
		t.Parallel()

		p := feature.NewMemoryProvider()
		require.NoError(t, p.SetEnabled(ctx, "valve", true))

		on, err := p.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.True(t, on)

		require.NoError(t, p.SetEnabled(ctx, "valve", false))
		on, err = p.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.False(t, on)
	})
}

func TestEnabledFailsClosed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.False(t, feature.Enabled(ctx, nil, "valve"))

	p := feature.NewMemoryProvider()
	assert.False(t, feature.Enabled(ctx, p, "valve"), "missing flag reads as disabled")

	require.NoError(t, p.SetEnabled(ctx, "valve", true))
	assert.True(t, feature.Enabled(ctx, p, "valve"))

	assert.False(t, feature.Enabled(ctx, failingProvider{}, "valve"), "storage error reads as disabled")
}

type failingProvider struct{}

func (failingProvider) IsEnabled(context.Context, string) (bool, error) {
	return false, errors.New("storage unreachable")
}

func (failingProvider) SetEnabled(context.Context, string, bool) error {
	return errors.New("storage unreachable")
}

// countingProvider tracks backend reads to observe cache behavior.
type countingProvider struct {
	inner *feature.MemoryProvider
	reads int
}

func (c *countingProvider) IsEnabled(ctx context.Context, name string) (bool, error) {
	c.reads++
	return c.inner.IsEnabled(ctx, name)
}

func (c *countingProvider) SetEnabled(ctx context.Context, name string, enabled bool) error {
	return c.inner.SetEnabled(ctx, name, enabled)
}

func TestCachedProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("serves from cache within TTL", func(t *testing.T) {
		t.Parallel()

		backend := &countingProvider{inner: feature.NewMemoryProvider(feature.Flag{Name: "valve", Enabled: true})}
		now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
		cached := feature.NewCached(backend, 30*time.Second,
			feature.WithCacheClock(func() time.Time { return now }))

		for i := 0; i < 5; i++ {
			on, err := cached.IsEnabled(ctx, "valve")
			require.NoError(t, err)
			assert.True(t, on)
		}
		assert.Equal(t, 1, backend.reads)
	})

	t.Run("expires after TTL", func(t *testing.T) {
		t.Parallel()

		backend := &countingProvider{inner: feature.NewMemoryProvider(feature.Flag{Name: "valve", Enabled: true})}
		now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
		cached := feature.NewCached(backend, 30*time.Second,
			feature.WithCacheClock(func() time.Time { return now }))

		_, err := cached.IsEnabled(ctx, "valve")
		require.NoError(t, err)

		// Operator toggles the flag off out of band.
		require.NoError(t, backend.inner.SetEnabled(ctx, "valve", false))

		now = now.Add(31 * time.Second)
		on, err := cached.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.False(t, on)
		assert.Equal(t, 2, backend.reads)
	})

	t.Run("caches not-found", func(t *testing.T) {
		t.Parallel()

		backend := &countingProvider{inner: feature.NewMemoryProvider()}
		cached := feature.NewCached(backend, time.Minute)

		for i := 0; i < 3; i++ {
			_, err := cached.IsEnabled(ctx, "ghost")
			assert.ErrorIs(t, err, feature.ErrFlagNotFound)
		}
		assert.Equal(t, 1, backend.reads)
	})

	t.Run("write-through invalidates", func(t *testing.T) {
		t.Parallel()

		backend := &countingProvider{inner: feature.NewMemoryProvider(feature.Flag{Name: "valve", Enabled: false})}
		cached := feature.NewCached(backend, time.Minute)

		on, err := cached.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.False(t, on)

		require.NoError(t, cached.SetEnabled(ctx, "valve", true))

		on, err = cached.IsEnabled(ctx, "valve")
		require.NoError(t, err)
		assert.True(t, on)
	})
}
