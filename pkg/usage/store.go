package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store records study events and answers the aggregate queries enforcement
// checks run. All count queries take half-open [from, to) windows.
type Store interface {
	// RecordSessionStart appends a session-start event.
	RecordSessionStart(ctx context.Context, userID, sessionID uuid.UUID) error

	// RecordAnswer appends a question-answer event within a session.
	RecordAnswer(ctx context.Context, userID, sessionID, questionID uuid.UUID) error

	// RecordPiecePractice appends a piece-practice event.
	RecordPiecePractice(ctx context.Context, userID, pieceID uuid.UUID) error

	// SessionsStartedBetween counts sessions the user started in [from, to).
	SessionsStartedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

	// QuestionsInSession counts answers the user recorded in one session.
	// Returns ErrSessionNotFound if the session does not exist or belongs to
	// another user.
	QuestionsInSession(ctx context.Context, userID, sessionID uuid.UUID) (int64, error)

	// QuestionsAnsweredBetween counts answers across all the user's sessions
	// in [from, to).
	QuestionsAnsweredBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

	// PiecesPracticedBetween counts piece practices in [from, to).
	PiecesPracticedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
}
