package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage is the Postgres-backed Storage implementation writing to the
// enforcement_blocks table.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres block storage on the given pool.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	if pool == nil {
		panic("auditlog: pool cannot be nil")
	}
	return &PGStorage{pool: pool}
}

func (s *PGStorage) Store(ctx context.Context, event BlockEvent) error {
	var metadata []byte
	if event.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(event.Metadata); err != nil {
			return errors.Join(ErrFailedToStoreBlock, err)
		}
	}

	_, err := s.pool.Exec(ctx, `
INSERT INTO enforcement_blocks
	(id, user_id, occurred_at, endpoint, reason_code, plan_code, current_usage, usage_limit,
	 ip_address, user_agent, request_id, metadata)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)`,
		event.ID, event.UserID, event.OccurredAt, event.Endpoint, event.ReasonCode,
		event.PlanCode, event.CurrentUsage, event.Limit,
		event.IP, event.UserAgent, event.RequestID, metadata,
	)
	if err != nil {
		return errors.Join(ErrFailedToStoreBlock, err)
	}
	return nil
}

func (s *PGStorage) ByUser(ctx context.Context, userID uuid.UUID, limit int) ([]BlockEvent, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, user_id, occurred_at, endpoint, reason_code,
	coalesce(plan_code, ''), current_usage, usage_limit,
	coalesce(ip_address, ''), coalesce(user_agent, ''), coalesce(request_id, ''), metadata
FROM enforcement_blocks
WHERE user_id = $1
ORDER BY occurred_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryBlocks, err)
	}
	defer rows.Close()

	var events []BlockEvent
	for rows.Next() {
		var e BlockEvent
		var metadata []byte
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.OccurredAt, &e.Endpoint, &e.ReasonCode,
			&e.PlanCode, &e.CurrentUsage, &e.Limit,
			&e.IP, &e.UserAgent, &e.RequestID, &metadata,
		); err != nil {
			return nil, errors.Join(ErrFailedToQueryBlocks, err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, errors.Join(ErrFailedToQueryBlocks, err)
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryBlocks, err)
	}
	return events, nil
}

func (s *PGStorage) AggregatedStats(ctx context.Context, from, to time.Time) (Stats, error) {
	stats := Stats{
		From:       from,
		To:         to,
		ByDay:      make(map[string]int64),
		ByPlan:     make(map[string]int64),
		ByReason:   make(map[string]int64),
		ByEndpoint: make(map[string]int64),
	}

	groupings := []struct {
		expr string
		into map[string]int64
	}{
		{`to_char(occurred_at, 'YYYY-MM-DD')`, stats.ByDay},
		{`coalesce(plan_code, '')`, stats.ByPlan},
		{`reason_code`, stats.ByReason},
		{`endpoint`, stats.ByEndpoint},
	}

	for _, g := range groupings {
		rows, err := s.pool.Query(ctx, `
SELECT `+g.expr+` AS bucket, count(*)
FROM enforcement_blocks
WHERE occurred_at >= $1 AND occurred_at < $2
GROUP BY bucket`, from, to)
		if err != nil {
			return Stats{}, errors.Join(ErrFailedToQueryBlocks, err)
		}
		for rows.Next() {
			var bucket string
			var n int64
			if err := rows.Scan(&bucket, &n); err != nil {
				rows.Close()
				return Stats{}, errors.Join(ErrFailedToQueryBlocks, err)
			}
			g.into[bucket] = n
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return Stats{}, errors.Join(ErrFailedToQueryBlocks, err)
		}
		rows.Close()
	}

	for _, n := range stats.ByReason {
		stats.Total += n
	}
	return stats, nil
}
