package store

import (
	"context"
	"sync"

	"claimgate/internal/claims/models"
)

type claimKey struct {
	subject   models.Address
	claimType models.ClaimType
}

// InMemoryStore is the mutex-guarded reference implementation of ClaimStore.
// Claims are overwritten per (subject, claim type); fingerprints and identity
// markers only grow.
type InMemoryStore struct {
	mu           sync.RWMutex
	claims       map[claimKey]models.Claim
	identities   map[models.Address]struct{}
	fingerprints map[models.Fingerprint]struct{}
}

// NewInMemoryStore creates an empty claim store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		claims:       make(map[claimKey]models.Claim),
		identities:   make(map[models.Address]struct{}),
		fingerprints: make(map[models.Fingerprint]struct{}),
	}
}

func (s *InMemoryStore) GetClaim(_ context.Context, subject models.Address, claimType models.ClaimType) (*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimKey{subject: subject, claimType: claimType}]
	if !ok {
		return nil, ErrNotFound
	}
	return &claim, nil
}

func (s *InMemoryStore) PutClaim(_ context.Context, claim models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putClaimLocked(claim)
	return nil
}

func (s *InMemoryStore) putClaimLocked(claim models.Claim) {
	s.claims[claimKey{subject: claim.Subject, claimType: claim.Type}] = claim
	s.identities[claim.Subject] = struct{}{}
}

func (s *InMemoryStore) HasIdentity(_ context.Context, subject models.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.identities[subject]
	return ok, nil
}

func (s *InMemoryStore) IsFingerprintUsed(_ context.Context, fp models.Fingerprint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.fingerprints[fp]
	return ok, nil
}

func (s *InMemoryStore) MarkFingerprintUsed(_ context.Context, fp models.Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markFingerprintLocked(fp)
}

func (s *InMemoryStore) markFingerprintLocked(fp models.Fingerprint) error {
	if _, ok := s.fingerprints[fp]; ok {
		return ErrFingerprintUsed
	}
	s.fingerprints[fp] = struct{}{}
	return nil
}

// CommitSubmission holds the write lock across both effects so concurrent
// submissions with the same fingerprint serialize: exactly one wins.
func (s *InMemoryStore) CommitSubmission(_ context.Context, fp models.Fingerprint, claim models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.markFingerprintLocked(fp); err != nil {
		return err
	}
	s.putClaimLocked(claim)
	return nil
}

// ClaimCount reports the number of stored claims, for metrics gauges.
func (s *InMemoryStore) ClaimCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims)
}
