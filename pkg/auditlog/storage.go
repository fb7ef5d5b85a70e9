package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage persists and queries block events.
type Storage interface {
	// Store appends one block event.
	Store(ctx context.Context, event BlockEvent) error

	// ByUser returns the user's most recent block events, newest first,
	// capped at limit.
	ByUser(ctx context.Context, userID uuid.UUID, limit int) ([]BlockEvent, error)

	// AggregatedStats aggregates denials in [from, to).
	AggregatedStats(ctx context.Context, from, to time.Time) (Stats, error)
}
