package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// BlockEvent is one enforcement denial. Write-once; never updated or deleted
// by this package.
type BlockEvent struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Endpoint     string         `json:"endpoint"`
	ReasonCode   string         `json:"reason_code"`
	PlanCode     string         `json:"plan_code,omitempty"` // plan at time of block, empty if none
	CurrentUsage int64          `json:"current_usage"`
	Limit        int64          `json:"limit"`
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// BlockOption adds optional request-scoped fields to a BlockEvent.
type BlockOption func(*BlockEvent)

// WithIP records the client IP address.
func WithIP(ip string) BlockOption {
	return func(e *BlockEvent) { e.IP = ip }
}

// WithUserAgent records the client user agent.
func WithUserAgent(ua string) BlockOption {
	return func(e *BlockEvent) { e.UserAgent = ua }
}

// WithRequestID records the correlation ID of the blocked request.
func WithRequestID(id string) BlockOption {
	return func(e *BlockEvent) { e.RequestID = id }
}

// WithMetadata adds one structured metadata entry (e.g. a session ID).
func WithMetadata(key string, value any) BlockOption {
	return func(e *BlockEvent) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// Stats aggregates denial counts over a window for operational dashboards.
type Stats struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Total      int64            `json:"total"`
	ByDay      map[string]int64 `json:"by_day"` // keyed by YYYY-MM-DD
	ByPlan     map[string]int64 `json:"by_plan"`
	ByReason   map[string]int64 `json:"by_reason"`
	ByEndpoint map[string]int64 `json:"by_endpoint"`
}
