package enforcement

import "time"

// ReasonCode identifies why an action was denied (or, for
// ReasonHeavyUserExtraSessionGranted, specially allowed). Values are stable:
// clients key UI behavior on them.
type ReasonCode string

const (
	ReasonNoActiveSubscription              ReasonCode = "NO_ACTIVE_SUBSCRIPTION"
	ReasonSubscriptionExpired               ReasonCode = "SUBSCRIPTION_EXPIRED"
	ReasonLimitSessionsDaily                ReasonCode = "LIMIT_SESSIONS_DAILY"
	ReasonLimitSessionsContinuousStudy      ReasonCode = "LIMIT_SESSIONS_CONTINUOUS_STUDY_NOT_ALLOWED"
	ReasonLimitQuestionsSession             ReasonCode = "LIMIT_QUESTIONS_SESSION"
	ReasonLimitQuestionsDaily               ReasonCode = "LIMIT_QUESTIONS_DAILY"
	ReasonLimitPieceWeekly                  ReasonCode = "LIMIT_PIECE_WEEKLY"
	ReasonLimitPieceMonthly                 ReasonCode = "LIMIT_PIECE_MONTHLY"
	ReasonFeatureReportCompleteNotAllowed   ReasonCode = "FEATURE_REPORT_COMPLETE_NOT_ALLOWED"
	ReasonFeatureModeProfessionalNotAllowed ReasonCode = "FEATURE_MODE_PROFESSIONAL_NOT_ALLOWED"
	ReasonHeavyUserExtraSessionGranted      ReasonCode = "HEAVY_USER_EXTRA_SESSION_GRANTED"
)

// Decision is the structured allow/deny result of one enforcement check.
// It is JSON-serializable as-is for the API layer.
type Decision struct {
	Allowed bool `json:"allowed"`

	// Set on denials (and on heavy-user grants, where ReasonCode documents
	// the override).
	ReasonCode          ReasonCode `json:"reason_code,omitempty"`
	MessageTitle        string     `json:"message_title,omitempty"`
	MessageBody         string     `json:"message_body,omitempty"`
	UpgradeSuggestion   string     `json:"upgrade_suggestion,omitempty"`
	RecommendedPlanCode string     `json:"recommended_plan_code,omitempty"`
	NextReset           *time.Time `json:"next_reset,omitempty"`

	// Always set for quota checks, for client-side progress display.
	CurrentUsage int64 `json:"current_usage"`
	Limit        int64 `json:"limit"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// Metadata keys used on allowed decisions.
const (
	MetaHeavyUserEscapeActivated = "heavy_user_escape_activated"
	MetaExtraSessionsGranted     = "extra_sessions_granted"
	MetaSessionsLast7Days        = "sessions_last_7_days"
	MetaSessionID                = "session_id"
)
