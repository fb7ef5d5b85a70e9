package enforcement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/direitohub/oabprep/pkg/auditlog"
	"github.com/direitohub/oabprep/pkg/heavyuser"
	"github.com/direitohub/oabprep/pkg/plan"
	"github.com/direitohub/oabprep/pkg/subscription"
	"github.com/direitohub/oabprep/pkg/usage"
)

// Endpoint labels used in audit log entries.
const (
	EndpointStartSession   = "sessions.start"
	EndpointAnswerQuestion = "questions.answer"
	EndpointPracticePiece  = "pieces.practice"
	EndpointCompleteReport = "reports.complete"
)

// defaultQueryTimeout bounds every storage call inside a check so a slow
// database surfaces as a loud failure instead of hanging the request.
const defaultQueryTimeout = 5 * time.Second

// Service is the limits-enforcement orchestrator. It holds no mutable state
// of its own: the plan catalog is loaded once at construction and treated as
// immutable, everything else is read per call.
type Service struct {
	plans map[string]plan.Plan
	subs  subscription.Store
	usage usage.Store
	audit *auditlog.Logger
	valve *heavyuser.Valve // nil disables the escape valve path
	now   func() time.Time

	queryTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithValve enables the heavy-user escape valve on the daily session check.
func WithValve(v *heavyuser.Valve) Option {
	return func(s *Service) { s.valve = v }
}

// WithClock overrides the service's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithQueryTimeout bounds each check's storage work. Non-positive values are
// ignored.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// NewService loads the plan catalog from src and wires the enforcement
// orchestrator.
func NewService(ctx context.Context, src plan.Source, subs subscription.Store, usageStore usage.Store, audit *auditlog.Logger, opts ...Option) (*Service, error) {
	if subs == nil {
		panic("enforcement: subscription store cannot be nil")
	}
	if usageStore == nil {
		panic("enforcement: usage store cannot be nil")
	}
	if audit == nil {
		panic("enforcement: audit logger cannot be nil")
	}

	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(plan.ErrFailedToLoadPlans, err)
	}
	if err := plan.ValidateAll(plans); err != nil {
		return nil, err
	}

	s := &Service{
		plans:        plans,
		subs:         subs,
		usage:        usageStore,
		audit:        audit,
		now:          time.Now,
		queryTimeout: defaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckCanStartSession decides whether the user may start a study session.
// continuousStudy marks an explicit request for the uncapped continuous-study
// mode, which only some plans include.
func (s *Service) CheckCanStartSession(ctx context.Context, userID uuid.UUID, continuousStudy bool) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	p, denied, err := s.activePlan(ctx, userID, EndpointStartSession)
	if err != nil {
		return Decision{}, err
	}
	if denied != nil {
		return *denied, nil
	}

	if continuousStudy && !p.ContinuousStudy {
		return s.deny(ctx, userID, EndpointStartSession, ReasonLimitSessionsContinuousStudy, p, 0, 0, nil), nil
	}

	limit := p.SessionsPerDay
	if limit == plan.Unlimited {
		return Decision{Allowed: true, Limit: plan.Unlimited}, nil
	}

	now := s.now()
	from, to := usage.DayWindow(now)
	used, err := s.usage.SessionsStartedBetween(ctx, userID, from, to)
	if err != nil {
		return Decision{}, err
	}

	// Read-then-compare, not an atomic increment: two in-flight requests can
	// both pass at used == limit-1 and overshoot by one. Kept as a soft
	// limit; these caps are study nudges, not security boundaries.
	if used >= limit {
		if s.valve != nil {
			res := s.valve.CheckAndActivate(ctx, userID, p)
			if res.Activated {
				return Decision{
					Allowed:      true,
					ReasonCode:   ReasonHeavyUserExtraSessionGranted,
					CurrentUsage: used,
					Limit:        limit + res.BonusSessions,
					Metadata: map[string]any{
						MetaHeavyUserEscapeActivated: true,
						MetaExtraSessionsGranted:     res.BonusSessions,
						MetaSessionsLast7Days:        res.SessionsLast7Days,
					},
				}, nil
			}
		}
		reset := usage.NextDayStart(now)
		return s.deny(ctx, userID, EndpointStartSession, ReasonLimitSessionsDaily, p, used, limit, &reset), nil
	}

	return Decision{Allowed: true, CurrentUsage: used, Limit: limit}, nil
}

// CheckCanAnswerQuestion decides whether the user may answer one more
// question in the given session.
func (s *Service) CheckCanAnswerQuestion(ctx context.Context, userID, sessionID uuid.UUID) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	p, err := s.planForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, subscription.ErrNoActiveSubscription) || errors.Is(err, subscription.ErrSubscriptionExpired) {
			// A lapsed subscription and a stale session ID are surfaced the
			// same way: the session cannot be continued.
			d := s.denyWithMessage(ctx, userID, EndpointAnswerQuestion, ReasonNoActiveSubscription,
				"", sessionNotFoundMessage, 0, 0, nil,
				auditlog.WithMetadata(MetaSessionID, sessionID.String()))
			return d, nil
		}
		return Decision{}, err
	}

	inSession, err := s.usage.QuestionsInSession(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, usage.ErrSessionNotFound) {
			d := s.denyWithMessage(ctx, userID, EndpointAnswerQuestion, ReasonNoActiveSubscription,
				p.Code, sessionNotFoundMessage, 0, 0, nil,
				auditlog.WithMetadata(MetaSessionID, sessionID.String()))
			return d, nil
		}
		return Decision{}, err
	}

	if p.QuestionsPerSession != plan.Unlimited && inSession >= p.QuestionsPerSession {
		return s.deny(ctx, userID, EndpointAnswerQuestion, ReasonLimitQuestionsSession,
			p, inSession, p.QuestionsPerSession, nil,
			auditlog.WithMetadata(MetaSessionID, sessionID.String())), nil
	}

	if p.QuestionsPerDay != plan.Unlimited {
		now := s.now()
		from, to := usage.DayWindow(now)
		today, err := s.usage.QuestionsAnsweredBetween(ctx, userID, from, to)
		if err != nil {
			return Decision{}, err
		}
		if today >= p.QuestionsPerDay {
			reset := usage.NextDayStart(now)
			return s.deny(ctx, userID, EndpointAnswerQuestion, ReasonLimitQuestionsDaily,
				p, today, p.QuestionsPerDay, &reset), nil
		}
	}

	return Decision{Allowed: true, CurrentUsage: inSession, Limit: p.QuestionsPerSession}, nil
}

// CheckCanPracticePiece decides whether the user may practice one more
// procedural piece this calendar month.
func (s *Service) CheckCanPracticePiece(ctx context.Context, userID uuid.UUID) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	p, denied, err := s.activePlan(ctx, userID, EndpointPracticePiece)
	if err != nil {
		return Decision{}, err
	}
	if denied != nil {
		return *denied, nil
	}

	limit := p.PiecesPerMonth
	if limit == plan.Unlimited {
		return Decision{Allowed: true, Limit: plan.Unlimited}, nil
	}

	now := s.now()
	from, to := usage.MonthWindow(now)
	used, err := s.usage.PiecesPracticedBetween(ctx, userID, from, to)
	if err != nil {
		return Decision{}, err
	}

	if used >= limit {
		reset := usage.NextMonthStart(now)
		return s.deny(ctx, userID, EndpointPracticePiece, ReasonLimitPieceMonthly, p, used, limit, &reset), nil
	}

	return Decision{Allowed: true, CurrentUsage: used, Limit: limit}, nil
}

// CheckCanAccessCompleteReport decides whether the user's plan unlocks the
// complete performance report. Pure feature gate; no usage counting.
func (s *Service) CheckCanAccessCompleteReport(ctx context.Context, userID uuid.UUID) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	p, denied, err := s.activePlan(ctx, userID, EndpointCompleteReport)
	if err != nil {
		return Decision{}, err
	}
	if denied != nil {
		return *denied, nil
	}

	if !p.HasCompleteReport() {
		return s.deny(ctx, userID, EndpointCompleteReport, ReasonFeatureReportCompleteNotAllowed, p, 0, 0, nil), nil
	}
	return Decision{Allowed: true}, nil
}

// planForUser resolves the user's active subscription to its plan. Storage
// faults and unknown plan codes propagate as errors; missing or expired
// subscriptions come back as the store's sentinel errors.
func (s *Service) planForUser(ctx context.Context, userID uuid.UUID) (plan.Plan, error) {
	sub, err := s.subs.ActiveForUser(ctx, userID)
	if err != nil {
		return plan.Plan{}, err
	}
	p, ok := s.plans[sub.PlanCode]
	if !ok {
		return plan.Plan{}, errors.Join(plan.ErrPlanNotFound,
			fmt.Errorf("subscription %s references unknown plan %q", sub.ID, sub.PlanCode))
	}
	return p, nil
}

// activePlan wraps planForUser, converting the expected subscription states
// into denial decisions and leaving real faults as errors.
func (s *Service) activePlan(ctx context.Context, userID uuid.UUID, endpoint string) (plan.Plan, *Decision, error) {
	p, err := s.planForUser(ctx, userID)
	switch {
	case err == nil:
		return p, nil, nil
	case errors.Is(err, subscription.ErrNoActiveSubscription):
		d := s.deny(ctx, userID, endpoint, ReasonNoActiveSubscription, plan.Plan{}, 0, 0, nil)
		return plan.Plan{}, &d, nil
	case errors.Is(err, subscription.ErrSubscriptionExpired):
		d := s.deny(ctx, userID, endpoint, ReasonSubscriptionExpired, plan.Plan{}, 0, 0, nil)
		return plan.Plan{}, &d, nil
	default:
		return plan.Plan{}, nil, err
	}
}

// deny builds the denial decision from the message catalog and appends one
// audit log entry before returning.
func (s *Service) deny(ctx context.Context, userID uuid.UUID, endpoint string, code ReasonCode, p plan.Plan, used, limit int64, nextReset *time.Time, opts ...auditlog.BlockOption) Decision {
	return s.denyWithMessage(ctx, userID, endpoint, code, p.Code, MessageFor(code), used, limit, nextReset, opts...)
}

func (s *Service) denyWithMessage(ctx context.Context, userID uuid.UUID, endpoint string, code ReasonCode, planCode string, msg Message, used, limit int64, nextReset *time.Time, opts ...auditlog.BlockOption) Decision {
	s.audit.LogBlock(ctx, userID, endpoint, string(code), planCode, used, limit, opts...)

	return Decision{
		Allowed:             false,
		ReasonCode:          code,
		MessageTitle:        msg.Title,
		MessageBody:         msg.Body,
		UpgradeSuggestion:   msg.UpgradeSuggestion,
		RecommendedPlanCode: msg.RecommendedPlanCode,
		NextReset:           nextReset,
		CurrentUsage:        used,
		Limit:               limit,
	}
}
