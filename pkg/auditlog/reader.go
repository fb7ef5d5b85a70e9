package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultStatsWindow is the aggregation window used when none is given.
const DefaultStatsWindow = 30 * 24 * time.Hour

// Reader queries block history. Reads never mutate storage.
type Reader struct {
	storage Storage
	now     func() time.Time
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderClock overrides the reader's time source, for tests.
func WithReaderClock(now func() time.Time) ReaderOption {
	return func(r *Reader) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReader creates a block reader on the given storage.
func NewReader(storage Storage, opts ...ReaderOption) *Reader {
	if storage == nil {
		panic("auditlog: storage cannot be nil")
	}
	r := &Reader{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BlocksByUser returns the user's recent block history, newest first.
// A non-positive limit defaults to 50.
func (r *Reader) BlocksByUser(ctx context.Context, userID uuid.UUID, limit int) ([]BlockEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.storage.ByUser(ctx, userID, limit)
}

// AggregatedStats aggregates denials in [from, to). Zero bounds default to
// the trailing 30 days.
func (r *Reader) AggregatedStats(ctx context.Context, from, to time.Time) (Stats, error) {
	if to.IsZero() {
		to = r.now()
	}
	if from.IsZero() {
		from = to.Add(-DefaultStatsWindow)
	}
	return r.storage.AggregatedStats(ctx, from, to)
}
