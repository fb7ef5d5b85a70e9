package heavyuser_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/feature"
	"github.com/direitohub/oabprep/pkg/heavyuser"
	"github.com/direitohub/oabprep/pkg/plan"
	"github.com/direitohub/oabprep/pkg/usage"
)

var testNow = time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

func eligiblePlan() plan.Plan {
	return plan.Plan{
		Code:                 "premium",
		Name:                 "Premium",
		SessionsPerDay:       3,
		QuestionsPerSession:  plan.Unlimited,
		QuestionsPerDay:      plan.Unlimited,
		PiecesPerMonth:       plan.Unlimited,
		ReportTier:           plan.ReportTierComplete,
		BonusSessions:        2,
		MinSessionsLast7Days: 10,
	}
}

type valveFixture struct {
	valve *heavyuser.Valve
	store *heavyuser.MemoryStore
	usage *usage.MemoryStore
	flags *feature.MemoryProvider
}

func newValveFixture(t *testing.T, enabled bool) valveFixture {
	t.Helper()

	flags := feature.NewMemoryProvider(feature.Flag{Name: heavyuser.FlagName, Enabled: enabled})
	store := heavyuser.NewMemoryStore()
	// Usage events are stamped a minute before the valve's clock so they fall
	// inside the half-open trailing window.
	usageStore := usage.NewMemoryStore(usage.WithClock(func() time.Time { return testNow.Add(-time.Minute) }))
	valve := heavyuser.NewValve(flags, store, usageStore,
		heavyuser.WithClock(func() time.Time { return testNow }))

	return valveFixture{valve: valve, store: store, usage: usageStore, flags: flags}
}

func startSessions(t *testing.T, store *usage.MemoryStore, userID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, store.RecordSessionStart(context.Background(), userID, uuid.New()))
	}
}

func TestCheckAndActivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("disabled flag short-circuits", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, false)
		res := f.valve.CheckAndActivate(ctx, uuid.New(), eligiblePlan())
		assert.False(t, res.Activated)
		assert.Equal(t, heavyuser.ReasonDisabled, res.Reason)
	})

	t.Run("missing flag row reads as disabled", func(t *testing.T) {
		t.Parallel()

		store := heavyuser.NewMemoryStore()
		usageStore := usage.NewMemoryStore()
		valve := heavyuser.NewValve(feature.NewMemoryProvider(), store, usageStore)

		res := valve.CheckAndActivate(ctx, uuid.New(), eligiblePlan())
		assert.False(t, res.Activated)
		assert.Equal(t, heavyuser.ReasonDisabled, res.Reason)
	})

	t.Run("plan without bonus sessions is not eligible", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		p := eligiblePlan()
		p.BonusSessions = 0

		res := f.valve.CheckAndActivate(ctx, uuid.New(), p)
		assert.False(t, res.Activated)
		assert.Equal(t, heavyuser.ReasonPlanNotEligible, res.Reason)
	})

	t.Run("criterion not met", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		userID := uuid.New()
		startSessions(t, f.usage, userID, 4)

		res := f.valve.CheckAndActivate(ctx, userID, eligiblePlan())
		assert.False(t, res.Activated)
		assert.Equal(t, heavyuser.ReasonCriterionNotMet, res.Reason)
		assert.Equal(t, int64(4), res.SessionsLast7Days)
		assert.Empty(t, f.store.All())
	})

	t.Run("criterion met grants bonus and records activation", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		userID := uuid.New()
		startSessions(t, f.usage, userID, 12)

		res := f.valve.CheckAndActivate(ctx, userID, eligiblePlan())
		assert.True(t, res.Activated)
		assert.Equal(t, int64(2), res.BonusSessions)
		assert.Equal(t, int64(12), res.SessionsLast7Days)

		acts := f.store.All()
		require.Len(t, acts, 1)
		assert.Equal(t, userID, acts[0].UserID)
		assert.Equal(t, "premium", acts[0].PlanCode)
		assert.Equal(t, heavyuser.DayKey(testNow), acts[0].ActivatedOn)
		assert.Equal(t, int64(12), acts[0].SessionsLast7Days)
	})

	t.Run("second call same day is denied", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		userID := uuid.New()
		startSessions(t, f.usage, userID, 12)

		first := f.valve.CheckAndActivate(ctx, userID, eligiblePlan())
		require.True(t, first.Activated)

		second := f.valve.CheckAndActivate(ctx, userID, eligiblePlan())
		assert.False(t, second.Activated)
		assert.Equal(t, heavyuser.ReasonAlreadyActivated, second.Reason)
		assert.Len(t, f.store.All(), 1)
	})
}

func TestCheckAndActivateConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newValveFixture(t, true)
	userID := uuid.New()
	startSessions(t, f.usage, userID, 12)

	const n = 20
	results := make([]heavyuser.Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.valve.CheckAndActivate(ctx, userID, eligiblePlan())
		}()
	}
	wg.Wait()

	var activated int
	for _, res := range results {
		if res.Activated {
			activated++
		} else {
			assert.Equal(t, heavyuser.ReasonAlreadyActivated, res.Reason)
		}
	}
	assert.Equal(t, 1, activated, "exactly one concurrent call may win the grant")
	assert.Len(t, f.store.All(), 1)
}

func TestCanUseExtraSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("does not record", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		userID := uuid.New()
		startSessions(t, f.usage, userID, 12)

		assert.True(t, f.valve.CanUseExtraSession(ctx, userID, eligiblePlan()))
		assert.Empty(t, f.store.All())
	})

	t.Run("true after activation even if usage dips", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, true)
		userID := uuid.New()
		startSessions(t, f.usage, userID, 12)

		require.True(t, f.valve.CheckAndActivate(ctx, userID, eligiblePlan()).Activated)
		assert.True(t, f.valve.CanUseExtraSession(ctx, userID, eligiblePlan()))
	})

	t.Run("false when disabled", func(t *testing.T) {
		t.Parallel()

		f := newValveFixture(t, false)
		assert.False(t, f.valve.CanUseExtraSession(ctx, uuid.New(), eligiblePlan()))
	})
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newValveFixture(t, true)

	for _, sessions := range []int{10, 14} {
		userID := uuid.New()
		startSessions(t, f.usage, userID, sessions)
		require.True(t, f.valve.CheckAndActivate(ctx, userID, eligiblePlan()).Activated)
	}

	stats, err := f.valve.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActivationsToday)
	assert.Equal(t, int64(2), stats.ActivationsLast7Days)
	assert.Equal(t, int64(2), stats.UniqueUsersLast7Days)
	assert.InDelta(t, 12.0, stats.AvgSessionsLast7Days, 0.001)
}
