package plan

import (
	"errors"
	"fmt"
	"time"
)

// Unlimited disables a quota entirely (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// ReportTier identifies which performance report a plan unlocks.
type ReportTier string

const (
	ReportTierBasic    ReportTier = "basico"
	ReportTierComplete ReportTier = "completo"
)

// Plan describes a subscription tier and its quota/feature constraints.
// Immutable during a billing period; changed only by admin tooling.
type Plan struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Quotas. Unlimited (-1) disables the corresponding cap.
	SessionsPerDay      int64 `yaml:"sessions_per_day" json:"sessions_per_day"`
	QuestionsPerSession int64 `yaml:"questions_per_session" json:"questions_per_session"`
	QuestionsPerDay     int64 `yaml:"questions_per_day" json:"questions_per_day"`
	PiecesPerMonth      int64 `yaml:"pieces_per_month" json:"pieces_per_month"`

	// Feature switches.
	ContinuousStudy bool       `yaml:"continuous_study" json:"continuous_study"`
	ExtendedSession bool       `yaml:"extended_session" json:"extended_session"`
	ReportTier      ReportTier `yaml:"report_tier" json:"report_tier"`

	// Heavy-user escape valve policy knobs. BonusSessions is the number of
	// extra sessions granted on activation; MinSessionsLast7Days is the
	// trailing-7-day session count a user must reach to qualify.
	// BonusSessions == 0 makes the plan ineligible for the valve.
	BonusSessions        int64 `yaml:"bonus_sessions" json:"bonus_sessions"`
	MinSessionsLast7Days int64 `yaml:"min_sessions_last_7_days" json:"min_sessions_last_7_days"`

	// Public plans are available for self-registration.
	Public    bool `yaml:"public" json:"public"`
	TrialDays int  `yaml:"trial_days" json:"trial_days"`
}

// HasCompleteReport reports whether the plan unlocks the complete report.
func (p Plan) HasCompleteReport() bool {
	return p.ReportTier == ReportTierComplete
}

// TrialEndsAt returns the timestamp when a trial period ends for this plan.
// If no trial is available, returns startedAt.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActiveAt reports whether a trial started at startedAt is still
// running at now.
func (p Plan) IsTrialActiveAt(startedAt, now time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return now.UTC().Before(p.TrialEndsAt(startedAt))
}

// Validate checks the plan configuration for internally inconsistent values.
func (p Plan) Validate() error {
	if p.Code == "" {
		return errors.Join(ErrInvalidPlanConfiguration, errors.New("plan code cannot be empty"))
	}
	for field, v := range map[string]int64{
		"sessions_per_day":      p.SessionsPerDay,
		"questions_per_session": p.QuestionsPerSession,
		"questions_per_day":     p.QuestionsPerDay,
		"pieces_per_month":      p.PiecesPerMonth,
		"bonus_sessions":        p.BonusSessions,
	} {
		if v < Unlimited {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s: %s must be >= -1, got %d", p.Code, field, v))
		}
	}
	if p.MinSessionsLast7Days < 0 {
		return errors.Join(ErrInvalidPlanConfiguration,
			fmt.Errorf("plan %s: min_sessions_last_7_days must be >= 0", p.Code))
	}
	switch p.ReportTier {
	case ReportTierBasic, ReportTierComplete:
	default:
		return errors.Join(ErrInvalidPlanConfiguration,
			fmt.Errorf("plan %s: unknown report tier %q", p.Code, p.ReportTier))
	}
	if p.TrialDays < 0 {
		return errors.Join(ErrInvalidPlanConfiguration,
			fmt.Errorf("plan %s: negative trial days: %d", p.Code, p.TrialDays))
	}
	return nil
}

// ValidateAll checks a whole catalog, ensuring map keys match plan codes.
func ValidateAll(plans map[string]Plan) error {
	for code, p := range plans {
		if p.Code != code {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("catalog key %q does not match plan code %q", code, p.Code))
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
