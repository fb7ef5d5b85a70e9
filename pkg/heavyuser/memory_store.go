package heavyuser

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type activationKey struct {
	userID uuid.UUID
	day    string
}

// MemoryStore is an in-memory ActivationStore for tests. The keyed map plus
// mutex gives the same atomic check-then-insert the Postgres unique index
// provides.
type MemoryStore struct {
	mu          sync.Mutex
	byDay       map[activationKey]struct{}
	activations []Activation
}

// NewMemoryStore creates an empty in-memory activation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byDay: make(map[activationKey]struct{})}
}

func (s *MemoryStore) Record(ctx context.Context, activation *Activation) error {
	key := activationKey{activation.UserID, activation.ActivatedOn}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byDay[key]; exists {
		return ErrAlreadyActivatedToday
	}
	s.byDay[key] = struct{}{}
	s.activations = append(s.activations, *activation)
	return nil
}

func (s *MemoryStore) ExistsOn(ctx context.Context, userID uuid.UUID, day string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.byDay[activationKey{userID, day}]
	return exists, nil
}

func (s *MemoryStore) Stats(ctx context.Context, now time.Time) (Stats, error) {
	today := DayKey(now)
	weekAgo := now.AddDate(0, 0, -7)

	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	users := make(map[uuid.UUID]struct{})
	var sessionsSum int64
	for _, a := range s.activations {
		if a.ActivatedOn == today {
			stats.ActivationsToday++
		}
		if !a.ActivatedAt.Before(weekAgo) {
			stats.ActivationsLast7Days++
			users[a.UserID] = struct{}{}
			sessionsSum += a.SessionsLast7Days
		}
	}
	stats.UniqueUsersLast7Days = int64(len(users))
	if stats.ActivationsLast7Days > 0 {
		stats.AvgSessionsLast7Days = float64(sessionsSum) / float64(stats.ActivationsLast7Days)
	}
	return stats, nil
}

// All returns a copy of every recorded activation, for test assertions.
func (s *MemoryStore) All() []Activation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activation, len(s.activations))
	copy(out, s.activations)
	return out
}
