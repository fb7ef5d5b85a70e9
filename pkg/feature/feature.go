package feature

import (
	"context"
	"time"
)

// Flag represents a single global feature flag.
type Flag struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Provider is the interface all flag backends implement.
type Provider interface {
	// IsEnabled reports whether the named flag is on.
	// Returns ErrFlagNotFound if no such flag exists.
	IsEnabled(ctx context.Context, name string) (bool, error)

	// SetEnabled turns the named flag on or off, creating it if missing.
	SetEnabled(ctx context.Context, name string, enabled bool) error
}

// Enabled is the fail-closed read used on request paths: any error, including
// a missing flag row, reads as disabled. Feature gates must never take a
// request down with them.
func Enabled(ctx context.Context, p Provider, name string) bool {
	if p == nil {
		return false
	}
	on, err := p.IsEnabled(ctx, name)
	return err == nil && on
}
