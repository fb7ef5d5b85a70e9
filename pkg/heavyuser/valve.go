package heavyuser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/direitohub/oabprep/pkg/feature"
	"github.com/direitohub/oabprep/pkg/plan"
	"github.com/direitohub/oabprep/pkg/usage"
)

// Valve evaluates and records daily-cap overrides.
//
// Every error inside the valve degrades to "not activated": by the time the
// valve runs, the primary limit decision is already a denial, and a broken
// bonus feature must not turn that into a request failure.
type Valve struct {
	flags feature.Provider
	store ActivationStore
	usage usage.Store
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Valve.
type Option func(*Valve)

// WithLogger sets the operational log stream.
func WithLogger(log *slog.Logger) Option {
	return func(v *Valve) {
		if log != nil {
			v.log = log
		}
	}
}

// WithClock overrides the valve's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Valve) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValve creates an escape valve on the given flag provider, activation
// store and usage store.
func NewValve(flags feature.Provider, store ActivationStore, usageStore usage.Store, opts ...Option) *Valve {
	if store == nil {
		panic("heavyuser: activation store cannot be nil")
	}
	if usageStore == nil {
		panic("heavyuser: usage store cannot be nil")
	}
	v := &Valve{
		flags: flags,
		store: store,
		usage: usageStore,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsEnabled reports whether the valve is switched on globally. A missing
// flag row or a flag-store error reads as disabled.
func (v *Valve) IsEnabled(ctx context.Context) bool {
	return feature.Enabled(ctx, v.flags, FlagName)
}

// CheckAndActivate evaluates the heavy-user criterion for the user and, if
// satisfied, records one activation for today and returns the plan's bonus
// session count. The once-per-day constraint is decided at the store write,
// so concurrent calls resolve to exactly one grant.
func (v *Valve) CheckAndActivate(ctx context.Context, userID uuid.UUID, p plan.Plan) Result {
	if !v.IsEnabled(ctx) {
		return Result{Reason: ReasonDisabled}
	}
	if p.BonusSessions <= 0 {
		return Result{Reason: ReasonPlanNotEligible}
	}

	now := v.now()
	from, to := usage.TrailingWindow(now, 7)
	sessions, err := v.usage.SessionsStartedBetween(ctx, userID, from, to)
	if err != nil {
		v.warn(ctx, userID, "trailing usage read failed", err)
		return Result{Reason: ReasonStorageFailure}
	}

	if sessions < p.MinSessionsLast7Days {
		return Result{
			Reason:            ReasonCriterionNotMet,
			SessionsLast7Days: sessions,
		}
	}

	activation := &Activation{
		ID:          uuid.New(),
		UserID:      userID,
		PlanCode:    p.Code,
		ActivatedAt: now,
		ActivatedOn: DayKey(now),
		Criterion: fmt.Sprintf("%d sessions in trailing 7 days (minimum %d)",
			sessions, p.MinSessionsLast7Days),
		SessionsLast7Days: sessions,
		BonusSessions:     p.BonusSessions,
	}
	if err := v.store.Record(ctx, activation); err != nil {
		if errors.Is(err, ErrAlreadyActivatedToday) {
			return Result{
				Reason:            ReasonAlreadyActivated,
				SessionsLast7Days: sessions,
			}
		}
		v.warn(ctx, userID, "activation write failed", err)
		return Result{Reason: ReasonStorageFailure, SessionsLast7Days: sessions}
	}

	v.log.InfoContext(ctx, "heavy user escape valve activated",
		slog.String("user_id", userID.String()),
		slog.String("plan_code", p.Code),
		slog.Int64("sessions_last_7_days", sessions),
		slog.Int64("bonus_sessions", p.BonusSessions),
	)
	return Result{
		Activated:         true,
		Reason:            activation.Criterion,
		BonusSessions:     p.BonusSessions,
		SessionsLast7Days: sessions,
	}
}

// CanUseExtraSession is the non-recording probe used for UI hints: it reports
// whether a CheckAndActivate call right now would grant or has already
// granted today's bonus.
func (v *Valve) CanUseExtraSession(ctx context.Context, userID uuid.UUID, p plan.Plan) bool {
	if !v.IsEnabled(ctx) || p.BonusSessions <= 0 {
		return false
	}

	now := v.now()
	if activated, err := v.store.ExistsOn(ctx, userID, DayKey(now)); err == nil && activated {
		return true
	}

	from, to := usage.TrailingWindow(now, 7)
	sessions, err := v.usage.SessionsStartedBetween(ctx, userID, from, to)
	if err != nil {
		return false
	}
	return sessions >= p.MinSessionsLast7Days
}

// Statistics returns aggregate activation counts for dashboards. Read-only;
// never affects policy.
func (v *Valve) Statistics(ctx context.Context) (Stats, error) {
	return v.store.Stats(ctx, v.now())
}

func (v *Valve) warn(ctx context.Context, userID uuid.UUID, msg string, err error) {
	v.log.WarnContext(ctx, "heavy user escape valve: "+msg,
		slog.Any("error", err),
		slog.String("user_id", userID.String()),
	)
}
