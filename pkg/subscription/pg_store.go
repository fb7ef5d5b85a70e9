package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/direitohub/oabprep/pkg/pg"
)

// PGStore is the Postgres-backed Store implementation.
// Schema is provisioned by the migrations in migrations/; a partial unique
// index on (user_id) WHERE status IN ('active','trialing') backs the
// single-active-subscription invariant at the database level.
type PGStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPGStore creates a Postgres subscription store on the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("subscription: pool cannot be nil")
	}
	return &PGStore{pool: pool, now: time.Now}
}

const selectLatestSubscription = `
SELECT id, user_id, plan_code, status, started_at, ends_at, cancelled_at, created_at, updated_at
FROM subscriptions
WHERE user_id = $1 AND status <> 'cancelled'
ORDER BY created_at DESC
LIMIT 1`

// ActiveForUser returns the user's active subscription.
func (s *PGStore) ActiveForUser(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := s.pool.QueryRow(ctx, selectLatestSubscription, userID).Scan(
		&sub.ID, &sub.UserID, &sub.PlanCode, &sub.Status,
		&sub.StartedAt, &sub.EndsAt, &sub.CancelledAt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveSubscription
		}
		return nil, errors.Join(ErrFailedToQuerySubscription, err)
	}

	if !sub.IsActiveAt(s.now()) {
		return nil, ErrSubscriptionExpired
	}
	return &sub, nil
}

// Activate cancels any current subscription and creates a new active one,
// atomically within a transaction.
func (s *PGStore) Activate(ctx context.Context, userID uuid.UUID, planCode string, endsAt *time.Time) (*Subscription, error) {
	now := s.now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToSaveSubscription, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `
UPDATE subscriptions
SET status = 'cancelled', cancelled_at = $2, updated_at = $2
WHERE user_id = $1 AND status <> 'cancelled'`, userID, now); err != nil {
		return nil, errors.Join(ErrFailedToSaveSubscription, err)
	}

	sub := &Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		PlanCode:  planCode,
		Status:    StatusActive,
		StartedAt: now,
		EndsAt:    endsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO subscriptions (id, user_id, plan_code, status, started_at, ends_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, sub.UserID, sub.PlanCode, sub.Status,
		sub.StartedAt, sub.EndsAt, sub.CreatedAt, sub.UpdatedAt,
	); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, errors.Join(ErrConcurrentActivation, err)
		}
		return nil, errors.Join(ErrFailedToSaveSubscription, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Join(ErrFailedToSaveSubscription, err)
	}
	return sub, nil
}

// Cancel marks the user's current subscription as cancelled.
func (s *PGStore) Cancel(ctx context.Context, userID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE subscriptions
SET status = 'cancelled', cancelled_at = $2, updated_at = $2
WHERE user_id = $1 AND status <> 'cancelled'`, userID, s.now())
	if err != nil {
		return errors.Join(ErrFailedToSaveSubscription, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoActiveSubscription
	}
	return nil
}
