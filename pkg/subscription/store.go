package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines subscription persistence.
type Store interface {
	// ActiveForUser returns the user's currently active subscription.
	// Returns ErrNoActiveSubscription if the user has none, or
	// ErrSubscriptionExpired if the latest subscription has lapsed.
	ActiveForUser(ctx context.Context, userID uuid.UUID) (*Subscription, error)

	// Activate creates a new subscription for the user, cancelling any
	// existing one first so at most one is active at any instant.
	Activate(ctx context.Context, userID uuid.UUID, planCode string, endsAt *time.Time) (*Subscription, error)

	// Cancel marks the user's current subscription as cancelled.
	// Returns ErrNoActiveSubscription if there is nothing to cancel.
	Cancel(ctx context.Context, userID uuid.UUID) error
}
