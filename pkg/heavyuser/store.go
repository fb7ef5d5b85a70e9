package heavyuser

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActivationStore persists activations and answers the once-per-day check.
type ActivationStore interface {
	// Record appends one activation. Returns ErrAlreadyActivatedToday if an
	// activation already exists for (UserID, ActivatedOn); the check must be
	// atomic with the write.
	Record(ctx context.Context, activation *Activation) error

	// ExistsOn reports whether the user already activated on the given day.
	ExistsOn(ctx context.Context, userID uuid.UUID, day string) (bool, error)

	// Stats aggregates activations relative to now.
	Stats(ctx context.Context, now time.Time) (Stats, error)
}
