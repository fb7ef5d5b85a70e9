package usage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionKey struct {
	userID    uuid.UUID
	sessionID uuid.UUID
}

type event struct {
	userID uuid.UUID
	at     time.Time
}

// MemoryStore is an in-memory Store implementation for tests and local
// development.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[sessionKey]time.Time // session start times
	answers   map[sessionKey]int64     // answers per session
	starts    []event
	answered  []event
	practices []event
	now       func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the store's time source, for tests exercising day and
// month boundaries.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory usage store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[sessionKey]time.Time),
		answers:  make(map[sessionKey]int64),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) RecordSessionStart(ctx context.Context, userID, sessionID uuid.UUID) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{userID, sessionID}] = now
	s.starts = append(s.starts, event{userID, now})
	return nil
}

func (s *MemoryStore) RecordAnswer(ctx context.Context, userID, sessionID, questionID uuid.UUID) error {
	now := s.now()
	key := sessionKey{userID, sessionID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key]; !ok {
		return ErrSessionNotFound
	}
	s.answers[key]++
	s.answered = append(s.answered, event{userID, now})
	return nil
}

func (s *MemoryStore) RecordPiecePractice(ctx context.Context, userID, pieceID uuid.UUID) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.practices = append(s.practices, event{userID, now})
	return nil
}

func (s *MemoryStore) SessionsStartedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countBetween(s.starts, userID, from, to), nil
}

func (s *MemoryStore) QuestionsInSession(ctx context.Context, userID, sessionID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := sessionKey{userID, sessionID}
	if _, ok := s.sessions[key]; !ok {
		return 0, ErrSessionNotFound
	}
	return s.answers[key], nil
}

func (s *MemoryStore) QuestionsAnsweredBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countBetween(s.answered, userID, from, to), nil
}

func (s *MemoryStore) PiecesPracticedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countBetween(s.practices, userID, from, to), nil
}

func countBetween(events []event, userID uuid.UUID, from, to time.Time) int64 {
	var n int64
	for _, e := range events {
		if e.userID == userID && !e.at.Before(from) && e.at.Before(to) {
			n++
		}
	}
	return n
}
