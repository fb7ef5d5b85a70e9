package auditlog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direitohub/oabprep/pkg/auditlog"
)

func TestLogBlock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores one event per call", func(t *testing.T) {
		t.Parallel()

		storage := auditlog.NewMemoryStorage()
		now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
		logger := auditlog.NewLogger(storage, auditlog.WithClock(func() time.Time { return now }))

		userID := uuid.New()
		logger.LogBlock(ctx, userID, "sessions.start", "LIMIT_SESSIONS_DAILY", "gratuito", 1, 1,
			auditlog.WithRequestID("req-123"),
			auditlog.WithMetadata("session_id", "abc"),
		)

		events := storage.All()
		require.Len(t, events, 1)
		e := events[0]
		assert.Equal(t, userID, e.UserID)
		assert.Equal(t, "sessions.start", e.Endpoint)
		assert.Equal(t, "LIMIT_SESSIONS_DAILY", e.ReasonCode)
		assert.Equal(t, "gratuito", e.PlanCode)
		assert.Equal(t, int64(1), e.CurrentUsage)
		assert.Equal(t, int64(1), e.Limit)
		assert.Equal(t, "req-123", e.RequestID)
		assert.Equal(t, "abc", e.Metadata["session_id"])
		assert.Equal(t, now, e.OccurredAt)
	})

	t.Run("storage failure is swallowed with a warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		logger := auditlog.NewLogger(failingStorage{}, auditlog.WithLogger(log))

		assert.NotPanics(t, func() {
			logger.LogBlock(ctx, uuid.New(), "sessions.start", "LIMIT_SESSIONS_DAILY", "", 1, 1)
		})
		assert.Contains(t, buf.String(), "enforcement block not logged")
	})
}

type failingStorage struct{}

func (failingStorage) Store(context.Context, auditlog.BlockEvent) error {
	return errors.New("disk on fire")
}

func (failingStorage) ByUser(context.Context, uuid.UUID, int) ([]auditlog.BlockEvent, error) {
	return nil, errors.New("disk on fire")
}

func (failingStorage) AggregatedStats(context.Context, time.Time, time.Time) (auditlog.Stats, error) {
	return auditlog.Stats{}, errors.New("disk on fire")
}
