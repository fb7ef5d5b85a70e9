package usage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/usage"
)

func TestMemoryStoreSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	store := usage.NewMemoryStore(usage.WithClock(func() time.Time { return now }))

	userID := uuid.New()
	other := uuid.New()

	require.NoError(t, store.RecordSessionStart(ctx, userID, uuid.New()))
	require.NoError(t, store.RecordSessionStart(ctx, userID, uuid.New()))
	require.NoError(t, store.RecordSessionStart(ctx, other, uuid.New()))

	from, to := usage.DayWindow(now)
	n, err := store.SessionsStartedBetween(ctx, userID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Outside the window nothing counts.
	n, err = store.SessionsStartedBetween(ctx, userID, to, to.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStoreQuestions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := usage.NewMemoryStore()

	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("unknown session", func(t *testing.T) {
		_, err := store.QuestionsInSession(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, usage.ErrSessionNotFound)

		err = store.RecordAnswer(ctx, userID, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, usage.ErrSessionNotFound)
	})

	t.Run("answers accumulate per session", func(t *testing.T) {
		require.NoError(t, store.RecordSessionStart(ctx, userID, sessionID))
		require.NoError(t, store.RecordAnswer(ctx, userID, sessionID, uuid.New()))
		require.NoError(t, store.RecordAnswer(ctx, userID, sessionID, uuid.New()))

		n, err := store.QuestionsInSession(ctx, userID, sessionID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("foreign session is not visible", func(t *testing.T) {
		_, err := store.QuestionsInSession(ctx, uuid.New(), sessionID)
		assert.ErrorIs(t, err, usage.ErrSessionNotFound)
	})
}

func TestMemoryStorePiecesMonthBoundary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	// Practice recorded at 23:59:59 on the last day of August.
	recordedAt := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	now := recordedAt
	store := usage.NewMemoryStore(usage.WithClock(func() time.Time { return now }))
	require.NoError(t, store.RecordPiecePractice(ctx, userID, uuid.New()))

	// Counts toward August.
	from, to := usage.MonthWindow(recordedAt)
	n, err := store.PiecesPracticedBetween(ctx, userID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Checked at 00:00:01 on September 1st it must not count toward September.
	checkedAt := time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)
	from, to = usage.MonthWindow(checkedAt)
	n, err = store.PiecesPracticedBetween(ctx, userID, from, to)
	require.NoError(t, err)
	assert.Zero(t, n)
}
