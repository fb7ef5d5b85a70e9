package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for tests and local
// development. It keeps only the latest subscription per user, which is all
// the read contract needs.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
	now  func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the store's time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory subscription store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		subs: make(map[uuid.UUID]*Subscription),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveForUser returns the user's active subscription, distinguishing
// "never subscribed / cancelled" from "lapsed".
func (s *MemoryStore) ActiveForUser(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	sub, ok := s.subs[userID]
	s.mu.RUnlock()

	if !ok || sub.IsCancelled() {
		return nil, ErrNoActiveSubscription
	}
	if !sub.IsActiveAt(s.now()) {
		return nil, ErrSubscriptionExpired
	}

	cp := *sub
	return &cp, nil
}

// Activate cancels any current subscription and creates a new active one.
func (s *MemoryStore) Activate(ctx context.Context, userID uuid.UUID, planCode string, endsAt *time.Time) (*Subscription, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.subs[userID]; ok && !prev.IsCancelled() {
		prev.Status = StatusCancelled
		prev.CancelledAt = &now
		prev.UpdatedAt = now
	}

	sub := &Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		PlanCode:  planCode,
		Status:    StatusActive,
		StartedAt: now,
		EndsAt:    endsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.subs[userID] = sub

	cp := *sub
	return &cp, nil
}

// Cancel marks the user's current subscription as cancelled.
func (s *MemoryStore) Cancel(ctx context.Context, userID uuid.UUID) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[userID]
	if !ok || sub.IsCancelled() {
		return ErrNoActiveSubscription
	}

	sub.Status = StatusCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	return nil
}

// Put seeds the store with a subscription as-is, for tests that need
// non-default statuses.
func (s *MemoryStore) Put(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sub
	s.subs[sub.UserID] = &cp
}
