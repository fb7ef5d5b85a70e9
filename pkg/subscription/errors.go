package subscription

import "errors"

var (
	// ErrNoActiveSubscription means the user never had a subscription or the
	// latest one is cancelled.
	ErrNoActiveSubscription = errors.New("no active subscription")
	// ErrSubscriptionExpired means a subscription exists but its window has
	// lapsed or payment is past due.
	ErrSubscriptionExpired = errors.New("subscription expired")

	// ErrConcurrentActivation means another Activate for the same user won
	// the race; the partial unique index rejected this one.
	ErrConcurrentActivation = errors.New("concurrent subscription activation")

	ErrFailedToQuerySubscription = errors.New("failed to query subscription")
	ErrFailedToSaveSubscription  = errors.New("failed to save subscription")
)
