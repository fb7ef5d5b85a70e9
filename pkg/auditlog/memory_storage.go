package auditlog

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Storage implementation for tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []BlockEvent
}

// NewMemoryStorage creates an empty in-memory block storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Store(ctx context.Context, event BlockEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Metadata = maps.Clone(event.Metadata)
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStorage) ByUser(ctx context.Context, userID uuid.UUID, limit int) ([]BlockEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BlockEvent, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

func (s *MemoryStorage) AggregatedStats(ctx context.Context, from, to time.Time) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		From:       from,
		To:         to,
		ByDay:      make(map[string]int64),
		ByPlan:     make(map[string]int64),
		ByReason:   make(map[string]int64),
		ByEndpoint: make(map[string]int64),
	}
	for _, e := range s.events {
		if e.OccurredAt.Before(from) || !e.OccurredAt.Before(to) {
			continue
		}
		stats.Total++
		stats.ByDay[e.OccurredAt.Format(time.DateOnly)]++
		stats.ByPlan[e.PlanCode]++
		stats.ByReason[e.ReasonCode]++
		stats.ByEndpoint[e.Endpoint]++
	}
	return stats, nil
}

// All returns a copy of every stored event, for test assertions.
func (s *MemoryStorage) All() []BlockEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]BlockEvent, len(s.events))
	copy(out, s.events)
	return out
}
