// Package compliance decides whether subjects may receive or move value,
// based solely on live eligibility claims. It is a pure read side: it never
// writes claims and never consults proofs.
package compliance

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"claimgate/internal/claims/models"
	"claimgate/internal/compliance/metrics"
	"claimgate/internal/tracer"
	dErrors "claimgate/pkg/domain-errors"
)

// eligibleValue is the claim value a subject must hold to pass checks.
const eligibleValue = "true"

const (
	opIsEligible  = "is_eligible"
	opCanTransfer = "can_transfer"

	outcomeAllowed = "allowed"
	outcomeDenied  = "denied"
	outcomeError   = "error"
)

// ClaimReader is the read-only store surface the engine needs.
type ClaimReader interface {
	GetClaim(ctx context.Context, subject models.Address, claimType models.ClaimType) (*models.Claim, error)
}

// Service evaluates eligibility rules against the claim store.
type Service struct {
	claims  ClaimReader
	clock   func() time.Time
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTracer sets the tracer for the service.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock injects a time source for deterministic testing.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New creates a new compliance service.
// Panics if the claim reader is nil - fail fast at startup.
func New(claims ClaimReader, opts ...Option) *Service {
	if claims == nil {
		panic("compliance.New: claim reader is required")
	}
	s := &Service{
		claims: claims,
		clock:  time.Now,
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsEligible reports whether subject holds a live eligibility claim whose
// value is "true". A missing claim is a plain false, not an error; an expired
// claim is also false because its expiry is not strictly in the future.
func (s *Service) IsEligible(ctx context.Context, subject models.Address) (bool, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanComplianceEligible,
		tracer.String(tracer.AttrSubject, subject.String()),
	)
	eligible, err := s.isEligible(ctx, subject)
	span.SetAttributes(tracer.Bool(tracer.AttrAllowed, eligible))
	span.End(err)
	s.countOutcome(opIsEligible, eligible, err)
	return eligible, err
}

func (s *Service) isEligible(ctx context.Context, subject models.Address) (bool, error) {
	claim, err := s.claims.GetClaim(ctx, subject, models.ClaimEligible)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "claim lookup failed")
	}
	now := uint64(s.clock().Unix())
	return claim.Live(now) && claim.Value.EqualsFold(eligibleValue), nil
}

// CanTransfer reports whether value may move from one subject to another.
// A transfer from the zero address is a mint and only checks the recipient;
// otherwise both parties must be eligible. Both lookups run concurrently and
// a single lookup failure fails the whole check closed.
func (s *Service) CanTransfer(ctx context.Context, from, to models.Address, amount uint64) (bool, error) {
	start := s.clock()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveCheckLatency(time.Since(start))
		}
	}()

	ctx, span := s.tracer.Start(ctx, tracer.SpanComplianceTransfer,
		tracer.String("from", from.String()),
		tracer.String("to", to.String()),
		tracer.Int64("amount", int64(amount)),
	)
	allowed, err := s.canTransfer(ctx, from, to)
	span.SetAttributes(tracer.Bool(tracer.AttrAllowed, allowed))
	span.End(err)
	s.countOutcome(opCanTransfer, allowed, err)

	if s.logger != nil && err == nil && !allowed {
		s.logger.Info("transfer denied",
			"from", from.String(),
			"to", to.String(),
		)
	}
	return allowed, err
}

func (s *Service) canTransfer(ctx context.Context, from, to models.Address) (bool, error) {
	if from.IsZero() {
		return s.isEligible(ctx, to)
	}

	var fromOK, toOK bool
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok, err := s.isEligible(ctx, from)
		fromOK = ok
		return err
	})
	g.Go(func() error {
		ok, err := s.isEligible(ctx, to)
		toOK = ok
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return fromOK && toOK, nil
}

func (s *Service) countOutcome(operation string, allowed bool, err error) {
	if s.metrics == nil {
		return
	}
	outcome := outcomeDenied
	switch {
	case err != nil:
		outcome = outcomeError
	case allowed:
		outcome = outcomeAllowed
	}
	s.metrics.IncrementChecks(operation, outcome)
}
