package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a subscription.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrialing  Status = "trialing"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
)

// Subscription links a user to a plan over a time window.
type Subscription struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	PlanCode    string
	Status      Status
	StartedAt   time.Time
	EndsAt      *time.Time // nil means open-ended
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// IsActiveAt reports whether the subscription grants access at the given time.
// Trialing counts as active; past_due and cancelled do not.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	if s.Status != StatusActive && s.Status != StatusTrialing {
		return false
	}
	if s.EndsAt != nil && !now.Before(*s.EndsAt) {
		return false
	}
	return true
}
