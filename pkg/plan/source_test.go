package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/plan"
)

func TestInMemSource(t *testing.T) {
	t.Parallel()

	p := validPlan()
	src := plan.NewInMemSource(map[string]plan.Plan{p.Code: p})

	plans, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, p, plans[p.Code])

	// Mutating the returned map must not affect subsequent loads.
	delete(plans, p.Code)
	plans, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	t.Run("valid catalog file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
- code: gratuito
  name: Gratuito
  sessions_per_day: 1
  questions_per_session: 20
  questions_per_day: 30
  pieces_per_month: 2
  report_tier: basico
- code: premium
  name: Premium
  sessions_per_day: -1
  questions_per_session: -1
  questions_per_day: -1
  pieces_per_month: -1
  continuous_study: true
  extended_session: true
  report_tier: completo
  bonus_sessions: 2
  min_sessions_last_7_days: 10
`), 0o600))

		plans, err := plan.NewYAMLSource(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 2)

		assert.Equal(t, int64(1), plans["gratuito"].SessionsPerDay)
		assert.Equal(t, plan.ReportTierBasic, plans["gratuito"].ReportTier)

		assert.Equal(t, plan.Unlimited, plans["premium"].SessionsPerDay)
		assert.True(t, plans["premium"].ContinuousStudy)
		assert.Equal(t, int64(2), plans["premium"].BonusSessions)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewYAMLSource("/nonexistent/plans.yaml").Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("invalid plan in file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
- code: quebrado
  sessions_per_day: -5
  report_tier: basico
`), 0o600))

		_, err := plan.NewYAMLSource(path).Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrInvalidPlanConfiguration)
	})
}
