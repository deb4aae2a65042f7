package oracle

import (
	"context"

	"claimgate/internal/audit"
	"claimgate/internal/claims/models"
	"claimgate/internal/ledger"
)

// ClaimStore is the persistence surface the oracle writes through. It matches
// the claims store so adapters are a direct pass-through.
type ClaimStore interface {
	GetClaim(ctx context.Context, subject models.Address, claimType models.ClaimType) (*models.Claim, error)
	IsFingerprintUsed(ctx context.Context, fp models.Fingerprint) (bool, error)
	CommitSubmission(ctx context.Context, fp models.Fingerprint, claim models.Claim) error
}

// Roles gates who may write claims.
type Roles interface {
	HasRole(ctx context.Context, role ledger.RoleID, addr models.Address) (bool, error)
}

// Journal records accepted submissions and hands back tx references.
type Journal interface {
	Record(ctx context.Context, payload []byte) (string, error)
}

// AuditPublisher receives submission outcomes for the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
