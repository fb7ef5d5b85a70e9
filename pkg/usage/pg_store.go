package usage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the Postgres-backed Store implementation. Counts are aggregate
// queries over the study_sessions, question_answers and piece_practices
// event tables; no counter rows are maintained.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres usage store on the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	if pool == nil {
		panic("usage: pool cannot be nil")
	}
	return &PGStore{pool: pool}
}

func (s *PGStore) RecordSessionStart(ctx context.Context, userID, sessionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO study_sessions (id, user_id, started_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO NOTHING`, sessionID, userID)
	if err != nil {
		return errors.Join(ErrFailedToRecordEvent, err)
	}
	return nil
}

func (s *PGStore) RecordAnswer(ctx context.Context, userID, sessionID, questionID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
INSERT INTO question_answers (id, session_id, user_id, question_id, answered_at)
SELECT gen_random_uuid(), ss.id, ss.user_id, $3, now()
FROM study_sessions ss
WHERE ss.id = $1 AND ss.user_id = $2`, sessionID, userID, questionID)
	if err != nil {
		return errors.Join(ErrFailedToRecordEvent, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *PGStore) RecordPiecePractice(ctx context.Context, userID, pieceID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO piece_practices (id, user_id, piece_id, practiced_at)
VALUES (gen_random_uuid(), $1, $2, now())`, userID, pieceID)
	if err != nil {
		return errors.Join(ErrFailedToRecordEvent, err)
	}
	return nil
}

func (s *PGStore) SessionsStartedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	return s.count(ctx, `
SELECT count(*) FROM study_sessions
WHERE user_id = $1 AND started_at >= $2 AND started_at < $3`, userID, from, to)
}

func (s *PGStore) QuestionsInSession(ctx context.Context, userID, sessionID uuid.UUID) (int64, error) {
	// Joined through study_sessions so a stale or foreign session ID surfaces
	// as ErrSessionNotFound instead of a zero count.
	var n int64
	err := s.pool.QueryRow(ctx, `
SELECT count(qa.id)
FROM study_sessions ss
LEFT JOIN question_answers qa ON qa.session_id = ss.id
WHERE ss.id = $1 AND ss.user_id = $2
GROUP BY ss.id`, sessionID, userID).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrSessionNotFound
		}
		return 0, errors.Join(ErrFailedToCountUsage, err)
	}
	return n, nil
}

func (s *PGStore) QuestionsAnsweredBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	return s.count(ctx, `
SELECT count(*) FROM question_answers
WHERE user_id = $1 AND answered_at >= $2 AND answered_at < $3`, userID, from, to)
}

func (s *PGStore) PiecesPracticedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	return s.count(ctx, `
SELECT count(*) FROM piece_practices
WHERE user_id = $1 AND practiced_at >= $2 AND practiced_at < $3`, userID, from, to)
}

func (s *PGStore) count(ctx context.Context, query string, userID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, query, userID, from, to).Scan(&n); err != nil {
		return 0, errors.Join(ErrFailedToCountUsage, err)
	}
	return n, nil
}
