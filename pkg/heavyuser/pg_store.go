package heavyuser

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the Postgres-backed ActivationStore. The unique index on
// (user_id, activated_on) makes the once-per-day constraint atomic under
// concurrent requests; ON CONFLICT DO NOTHING turns a lost race into
// ErrAlreadyActivatedToday instead of a constraint violation.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres activation store on the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("heavyuser: pool cannot be nil")
	}
	return &PGStore{pool: pool}
}

func (s *PGStore) Record(ctx context.Context, activation *Activation) error {
	tag, err := s.pool.Exec(ctx, `
INSERT INTO heavy_user_activations
	(id, user_id, plan_code, activated_at, activated_on, criterion, sessions_last_7_days, bonus_sessions)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id, activated_on) DO NOTHING`,
		activation.ID, activation.UserID, activation.PlanCode,
		activation.ActivatedAt, activation.ActivatedOn, activation.Criterion,
		activation.SessionsLast7Days, activation.BonusSessions,
	)
	if err != nil {
		return errors.Join(ErrFailedToRecordActivation, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyActivatedToday
	}
	return nil
}

func (s *PGStore) ExistsOn(ctx context.Context, userID uuid.UUID, day string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM heavy_user_activations WHERE user_id = $1 AND activated_on = $2
)`, userID, day).Scan(&exists)
	if err != nil {
		return false, errors.Join(ErrFailedToQueryActivations, err)
	}
	return exists, nil
}

func (s *PGStore) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats
	err := s.pool.QueryRow(ctx, `
SELECT
	count(*) FILTER (WHERE activated_on = $1),
	count(*) FILTER (WHERE activated_at >= $2),
	count(DISTINCT user_id) FILTER (WHERE activated_at >= $2),
	coalesce(avg(sessions_last_7_days) FILTER (WHERE activated_at >= $2), 0)
FROM heavy_user_activations`,
		DayKey(now), now.AddDate(0, 0, -7)).Scan(
		&stats.ActivationsToday,
		&stats.ActivationsLast7Days,
		&stats.UniqueUsersLast7Days,
		&stats.AvgSessionsLast7Days,
	)
	if err != nil {
		return Stats{}, errors.Join(ErrFailedToQueryActivations, err)
	}
	return stats, nil
}
