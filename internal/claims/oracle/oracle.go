package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"claimgate/internal/audit"
	"claimgate/internal/claims/models"
	"claimgate/internal/claims/oracle/metrics"
	"claimgate/internal/ledger"
	"claimgate/internal/tracer"
	dErrors "claimgate/pkg/domain-errors"
)

// defaultClaimTTL applies when a submission does not carry its own expiry.
const defaultClaimTTL = 30 * 24 * time.Hour

const (
	outcomeAccepted     = "accepted"
	outcomeUnauthorized = "unauthorized"
	outcomeReplay       = "replay"
	outcomeError        = "error"
)

// SubmitRequest carries one claim write. Expiry is a unix timestamp in
// seconds; zero means "now plus the configured TTL".
type SubmitRequest struct {
	Caller    models.Address
	Subject   models.Address
	ClaimType models.ClaimType
	Value     models.ClaimValue
	Expiry    uint64
	Proof     []byte

	// Request metadata for the audit trail, set by the transport layer.
	ClientIP string
	Device   string
	DeviceID string
}

// SubmitResult reports an accepted submission.
type SubmitResult struct {
	TxHash string
	Expiry uint64
}

// Service is the single write path for claims. Every write is authorized
// against the agent role, deduplicated by proof fingerprint, and recorded in
// the journal.
type Service struct {
	store    ClaimStore
	roles    Roles
	journal  Journal
	auditor  AuditPublisher
	claimTTL time.Duration
	clock    func() time.Time
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
	logger   *slog.Logger
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

// WithClaimTTL overrides the default lifetime of claims submitted without an
// explicit expiry.
func WithClaimTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.claimTTL = ttl
		}
	}
}

// New creates a new oracle service with required dependencies.
// Panics if required dependencies are nil - fail fast at startup.
// The auditor is required: unauthorized and replayed submissions must leave
// a trail even though they change no state.
func New(
	store ClaimStore,
	roles Roles,
	journal Journal,
	auditor AuditPublisher,
	opts ...Option,
) *Service {
	if store == nil {
		panic("oracle.New: claim store is required")
	}
	if roles == nil {
		panic("oracle.New: roles are required")
	}
	if journal == nil {
		panic("oracle.New: journal is required")
	}
	if auditor == nil {
		panic("oracle.New: auditor is required for the audit trail")
	}

	s := &Service{
		store:    store,
		roles:    roles,
		journal:  journal,
		auditor:  auditor,
		claimTTL: defaultClaimTTL,
		clock:    time.Now,
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit authorizes, deduplicates, and persists one claim write. The
// fingerprint consume and the claim write are a single atomic commit, so a
// lost race with a concurrent identical proof surfaces as a replay and
// leaves no partial state.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	start := s.clock()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveSubmitLatency(time.Since(start))
		}
	}()

	ctx, span := s.tracer.Start(ctx, tracer.SpanOracleSubmit,
		tracer.String(tracer.AttrSubject, req.Subject.String()),
		tracer.String(tracer.AttrClaimType, req.ClaimType.String()),
		tracer.String(tracer.AttrProofDigest, tracer.HashProof(req.Proof)),
	)
	var retErr error
	defer func() { span.End(retErr) }()

	authorized, err := s.roles.HasRole(ctx, ledger.AgentRole, req.Caller)
	if err != nil {
		retErr = dErrors.Wrap(err, dErrors.CodeChainError, "role check failed")
		s.countOutcome(outcomeError)
		return nil, retErr
	}
	if !authorized {
		s.emitAudit(ctx, req, audit.EventUnauthorized, "", "caller lacks agent role")
		s.countOutcome(outcomeUnauthorized)
		retErr = dErrors.New(dErrors.CodeUnauthorized, "caller is not an authorized agent")
		return nil, retErr
	}

	fp := models.FingerprintProof(req.Proof)
	used, err := s.store.IsFingerprintUsed(ctx, fp)
	if err != nil {
		retErr = dErrors.Wrap(err, dErrors.CodeInternal, "fingerprint lookup failed")
		s.countOutcome(outcomeError)
		return nil, retErr
	}
	if used {
		retErr = s.rejectReplay(ctx, req, span)
		return nil, retErr
	}

	expiry := req.Expiry
	if expiry == 0 {
		expiry = uint64(start.Add(s.claimTTL).Unix())
	}

	claim := models.Claim{
		Subject: req.Subject,
		Type:    req.ClaimType,
		Value:   req.Value,
		Expiry:  expiry,
	}
	if err := s.store.CommitSubmission(ctx, fp, claim); err != nil {
		// A concurrent submission of the same proof can win the commit
		// between the check above and this write.
		if dErrors.HasCode(err, dErrors.CodeProofReplay) {
			retErr = s.rejectReplay(ctx, req, span)
			return nil, retErr
		}
		retErr = dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist claim")
		s.countOutcome(outcomeError)
		return nil, retErr
	}

	payload := fmt.Sprintf("claim|%s|%s|%s|%d",
		req.Subject, req.ClaimType, req.Value, expiry)
	txHash, err := s.journal.Record(ctx, []byte(payload))
	if err != nil {
		retErr = dErrors.Wrap(err, dErrors.CodeChainError, "failed to record submission")
		s.countOutcome(outcomeError)
		return nil, retErr
	}

	span.SetAttributes(tracer.String(tracer.AttrTxHash, txHash))
	s.emitAudit(ctx, req, audit.EventClaimSubmitted, txHash, "")
	span.AddEvent(tracer.EventAuditEmitted)
	s.countOutcome(outcomeAccepted)

	if s.logger != nil {
		s.logger.Info("claim submitted",
			"subject", req.Subject.String(),
			"claim_type", req.ClaimType.String(),
			"tx_hash", txHash,
			"expiry", expiry,
		)
	}

	return &SubmitResult{TxHash: txHash, Expiry: expiry}, nil
}

func (s *Service) rejectReplay(ctx context.Context, req SubmitRequest, span tracer.Span) error {
	span.AddEvent(tracer.EventProofReplay)
	s.emitAudit(ctx, req, audit.EventProofReplayed, "", "proof fingerprint already used")
	if s.metrics != nil {
		s.metrics.IncrementReplaysBlocked()
	}
	s.countOutcome(outcomeReplay)
	return dErrors.New(dErrors.CodeProofReplay, "proof already used")
}

func (s *Service) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSubmissions(outcome)
	}
}

func (s *Service) emitAudit(ctx context.Context, req SubmitRequest, action audit.AuditEvent, txHash, reason string) {
	event := audit.Event{
		Timestamp: s.clock(),
		Subject:   req.Subject.String(),
		Agent:     req.Caller.String(),
		Action:    string(action),
		TxHash:    txHash,
		ClientIP:  req.ClientIP,
		Device:    req.Device,
		DeviceID:  req.DeviceID,
		Reason:    reason,
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.Error("failed to emit audit event",
			"error", err,
			"action", event.Action,
		)
	}
}
