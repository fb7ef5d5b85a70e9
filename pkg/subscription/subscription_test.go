package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/subscription"
)

func TestIsActiveAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		sub    subscription.Subscription
		at     time.Time
		active bool
	}{
		{
			name:   "active open-ended",
			sub:    subscription.Subscription{Status: subscription.StatusActive},
			at:     now,
			active: true,
		},
		{
			name:   "trialing counts as active",
			sub:    subscription.Subscription{Status: subscription.StatusTrialing},
			at:     now,
			active: true,
		},
		{
			name:   "past due denied",
			sub:    subscription.Subscription{Status: subscription.StatusPastDue},
			at:     now,
			active: false,
		},
		{
			name:   "cancelled denied",
			sub:    subscription.Subscription{Status: subscription.StatusCancelled},
			at:     now,
			active: false,
		},
		{
			name:   "active within window",
			sub:    subscription.Subscription{Status: subscription.StatusActive, EndsAt: &later},
			at:     now,
			active: true,
		},
		{
			name:   "active past window",
			sub:    subscription.Subscription{Status: subscription.StatusActive, EndsAt: &now},
			at:     now,
			active: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.active, tt.sub.IsActiveAt(tt.at))
		})
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no subscription", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewMemoryStore()
		_, err := store.ActiveForUser(ctx, uuid.New())
		assert.ErrorIs(t, err, subscription.ErrNoActiveSubscription)
	})

	t.Run("activate and read back", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewMemoryStore()
		userID := uuid.New()

		created, err := store.Activate(ctx, userID, "premium", nil)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusActive, created.Status)

		sub, err := store.ActiveForUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "premium", sub.PlanCode)
	})

	t.Run("activate replaces previous subscription", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewMemoryStore()
		userID := uuid.New()

		_, err := store.Activate(ctx, userID, "essencial", nil)
		require.NoError(t, err)
		_, err = store.Activate(ctx, userID, "premium", nil)
		require.NoError(t, err)

		sub, err := store.ActiveForUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "premium", sub.PlanCode)
	})

	t.Run("cancel", func(t *testing.T) {
		t.Parallel()

		store := subscription.NewMemoryStore()
		userID := uuid.New()

		_, err := store.Activate(ctx, userID, "premium", nil)
		require.NoError(t, err)
		require.NoError(t, store.Cancel(ctx, userID))

		_, err = store.ActiveForUser(ctx, userID)
		assert.ErrorIs(t, err, subscription.ErrNoActiveSubscription)

		assert.ErrorIs(t, store.Cancel(ctx, userID), subscription.ErrNoActiveSubscription)
	})

	t.Run("expired subscription is distinguished", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
		store := subscription.NewMemoryStore(subscription.WithClock(func() time.Time { return now }))

		userID := uuid.New()
		past := now.Add(-time.Hour)
		store.Put(&subscription.Subscription{
			ID:       uuid.New(),
			UserID:   userID,
			PlanCode: "essencial",
			Status:   subscription.StatusActive,
			EndsAt:   &past,
		})

		_, err := store.ActiveForUser(ctx, userID)
		assert.ErrorIs(t, err, subscription.ErrSubscriptionExpired)
	})
}
