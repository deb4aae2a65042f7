package store

import (
	"context"

	"claimgate/internal/claims/models"
	dErrors "claimgate/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "claim not found")

	// ErrFingerprintUsed is returned when a fingerprint is marked twice.
	ErrFingerprintUsed = dErrors.New(dErrors.CodeProofReplay, "proof fingerprint already used")
)

// ClaimStore is the durable state for claims, identity markers, and consumed
// proof fingerprints. It never authorizes or checks wall-clock expiry on
// writes; that is the oracle's and the read side's job respectively.
type ClaimStore interface {
	// GetClaim returns the latest claim for (subject, claim type), or
	// ErrNotFound. Expired claims are still returned; deciders must check
	// expiry, not existence.
	GetClaim(ctx context.Context, subject models.Address, claimType models.ClaimType) (*models.Claim, error)

	// PutClaim overwrites the claim for its (subject, claim type) pair and
	// sets the subject's identity marker if unset.
	PutClaim(ctx context.Context, claim models.Claim) error

	// HasIdentity reports whether any claim was ever recorded for subject.
	HasIdentity(ctx context.Context, subject models.Address) (bool, error)

	// IsFingerprintUsed reports whether a proof fingerprint was consumed.
	IsFingerprintUsed(ctx context.Context, fp models.Fingerprint) (bool, error)

	// MarkFingerprintUsed irreversibly consumes a fingerprint. Returns
	// ErrFingerprintUsed if it was already consumed; the check and the set
	// are atomic with respect to concurrent submissions.
	MarkFingerprintUsed(ctx context.Context, fp models.Fingerprint) error

	// CommitSubmission atomically consumes the fingerprint and writes the
	// claim. Either both effects become observable or neither does.
	CommitSubmission(ctx context.Context, fp models.Fingerprint, claim models.Claim) error
}
