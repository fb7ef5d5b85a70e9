package auditlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Logger writes block events.
type Logger struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// LoggerOption configures a Logger.
type LoggerOption func(*Logger)

// WithLogger sets the operational log stream for write-failure warnings.
func WithLogger(log *slog.Logger) LoggerOption {
	return func(l *Logger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithClock overrides the logger's time source, for tests.
func WithClock(now func() time.Time) LoggerOption {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates a block logger on the given storage.
func NewLogger(storage Storage, opts ...LoggerOption) *Logger {
	if storage == nil {
		panic("auditlog: storage cannot be nil")
	}
	l := &Logger{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogBlock records one enforcement denial. It never returns an error: a
// storage failure is logged as a warning and dropped, so the decision already
// made reaches the user regardless of the audit trail's health.
func (l *Logger) LogBlock(ctx context.Context, userID uuid.UUID, endpoint, reasonCode, planCode string, currentUsage, limit int64, opts ...BlockOption) {
	event := BlockEvent{
		ID:           uuid.New(),
		UserID:       userID,
		OccurredAt:   l.now(),
		Endpoint:     endpoint,
		ReasonCode:   reasonCode,
		PlanCode:     planCode,
		CurrentUsage: currentUsage,
		Limit:        limit,
	}
	for _, opt := range opts {
		opt(&event)
	}

	if err := l.storage.Store(ctx, event); err != nil {
		l.log.WarnContext(ctx, "enforcement block not logged",
			slog.Any("error", err),
			slog.String("user_id", userID.String()),
			slog.String("endpoint", endpoint),
			slog.String("reason_code", reasonCode),
		)
	}
}
