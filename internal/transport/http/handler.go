// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"context"
	"log/slog"

	ledgercontracts "claimgate/contracts/ledger"
	"claimgate/internal/audit"
	"claimgate/internal/claims/models"
	"claimgate/internal/claims/oracle"
	"claimgate/internal/ledger"
	"claimgate/internal/tracer"
	"claimgate/internal/transcript"
)

// Auditor records security-relevant events. Optional; a nil auditor disables
// the trail without changing handler behavior.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// TranscriptValidator checks submitted transcripts before any write.
type TranscriptValidator interface {
	Validate(t transcript.Transcript, expectedField, expectedValue string) (*transcript.ValidationResult, error)
}

// ClaimSubmitter is the single write path into the claim store.
type ClaimSubmitter interface {
	Submit(ctx context.Context, req oracle.SubmitRequest) (*oracle.SubmitResult, error)
}

// ComplianceChecker gates value movement on live eligibility claims.
type ComplianceChecker interface {
	CanTransfer(ctx context.Context, from, to models.Address, amount uint64) (bool, error)
	IsEligible(ctx context.Context, subject models.Address) (bool, error)
}

// Token is the compliance-gated asset the mint and transfer endpoints drive.
type Token interface {
	Symbol() string
	BalanceOf(addr models.Address) uint64
	Mint(ctx context.Context, to models.Address, amount uint64) (string, error)
	Transfer(ctx context.Context, from, to models.Address, amount uint64) (string, error)
}

// Receipts is the read side of the transaction journal.
type Receipts interface {
	GetReceipt(ctx context.Context, txHash string) (*ledgercontracts.Receipt, error)
	HeadBlock(ctx context.Context) (uint64, error)
	TxCount() uint64
}

// AgentRoles manages which addresses may relay claim submissions.
type AgentRoles interface {
	HasRole(ctx context.Context, role ledger.RoleID, addr models.Address) (bool, error)
	GrantRole(ctx context.Context, role ledger.RoleID, addr models.Address) error
	RevokeRole(ctx context.Context, role ledger.RoleID, addr models.Address) error
}

// Handler holds the wired domain services for all endpoints.
type Handler struct {
	validator  TranscriptValidator
	submitter  ClaimSubmitter
	compliance ComplianceChecker
	token      Token
	receipts   Receipts
	roles      AgentRoles
	wallet     *ledger.Wallet // nil when no key material is configured
	auditor    Auditor
	tracer     tracer.Tracer
	logger     *slog.Logger
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithAuditor sets the audit event sink for token and role operations.
func WithAuditor(a Auditor) HandlerOption {
	return func(h *Handler) {
		h.auditor = a
	}
}

// WithTracer sets the tracer for gateway-level spans.
func WithTracer(t tracer.Tracer) HandlerOption {
	return func(h *Handler) {
		h.tracer = t
	}
}

// WithWallet sets the relaying agent wallet. A nil wallet leaves
// chain-writing endpoints degraded to WALLET_NOT_CONFIGURED.
func WithWallet(w *ledger.Wallet) HandlerOption {
	return func(h *Handler) {
		h.wallet = w
	}
}

// NewHandler creates the HTTP handler set.
// Panics if required dependencies are nil - fail fast at startup.
func NewHandler(
	validator TranscriptValidator,
	submitter ClaimSubmitter,
	compliance ComplianceChecker,
	token Token,
	receipts Receipts,
	roles AgentRoles,
	logger *slog.Logger,
	opts ...HandlerOption,
) *Handler {
	if validator == nil {
		panic("httptransport.NewHandler: validator is required")
	}
	if submitter == nil {
		panic("httptransport.NewHandler: submitter is required")
	}
	if compliance == nil {
		panic("httptransport.NewHandler: compliance checker is required")
	}
	if token == nil {
		panic("httptransport.NewHandler: token is required")
	}
	if receipts == nil {
		panic("httptransport.NewHandler: receipts are required")
	}
	if roles == nil {
		panic("httptransport.NewHandler: roles are required")
	}

	h := &Handler{
		validator:  validator,
		submitter:  submitter,
		compliance: compliance,
		token:      token,
		receipts:   receipts,
		roles:      roles,
		tracer:     tracer.NewNoop(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// emitAudit records an event if an auditor is configured. The trail is
// best-effort and never fails the request.
func (h *Handler) emitAudit(ctx context.Context, event audit.Event) {
	if h.auditor == nil {
		return
	}
	if err := h.auditor.Emit(ctx, event); err != nil && h.logger != nil {
		h.logger.Error("failed to emit audit event",
			"error", err,
			"action", event.Action,
			"subject", event.Subject,
		)
	}
}
