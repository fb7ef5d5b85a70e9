package heavyuser

import (
	"time"

	"github.com/google/uuid"
)

// FlagName is the global feature flag gating the whole subsystem.
const FlagName = "heavy_user_escape_valve"

// Activation is one immutable record of a daily-cap override.
type Activation struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	PlanCode          string    `json:"plan_code"`
	ActivatedAt       time.Time `json:"activated_at"`
	ActivatedOn       string    `json:"activated_on"` // calendar day key, YYYY-MM-DD
	Criterion         string    `json:"criterion"`
	SessionsLast7Days int64     `json:"sessions_last_7_days"`
	BonusSessions     int64     `json:"bonus_sessions"`
}

// Result is the outcome of one CheckAndActivate call.
type Result struct {
	Activated         bool   `json:"activated"`
	Reason            string `json:"reason"`
	BonusSessions     int64  `json:"bonus_sessions"`
	SessionsLast7Days int64  `json:"sessions_last_7_days"`
}

// Non-activation reasons surfaced to callers and dashboards.
const (
	ReasonDisabled         = "escape valve disabled"
	ReasonPlanNotEligible  = "plan grants no bonus sessions"
	ReasonCriterionNotMet  = "criterion not met"
	ReasonAlreadyActivated = "already activated today"
	ReasonStorageFailure   = "activation not recorded"
)

// Stats aggregates activation counts for operational dashboards.
type Stats struct {
	ActivationsToday     int64   `json:"activations_today"`
	ActivationsLast7Days int64   `json:"activations_last_7_days"`
	UniqueUsersLast7Days int64   `json:"unique_users_last_7_days"`
	AvgSessionsLast7Days float64 `json:"avg_sessions_last_7_days"` // among activators of the last 7 days
}

// DayKey formats t as the calendar-day activation key in t's location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
