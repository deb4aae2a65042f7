package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"claimgate/internal/claims/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func testAddress(last byte) models.Address {
	var a models.Address
	a[19] = last
	return a
}

func (s *InMemoryStoreSuite) TestPutAndGetClaim() {
	ctx := context.Background()
	subject := testAddress(1)

	s.Run("returns ErrNotFound for unknown pair", func() {
		_, err := s.store.GetClaim(ctx, subject, models.ClaimEligible)
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("stores and retrieves a claim", func() {
		claim := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}
		s.Require().NoError(s.store.PutClaim(ctx, claim))

		found, err := s.store.GetClaim(ctx, subject, models.ClaimEligible)
		s.Require().NoError(err)
		s.Equal(claim, *found)
	})

	s.Run("overwrites on resubmission, last write wins", func() {
		first := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}
		second := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.NewClaimValue("false"), Expiry: 2000}
		s.Require().NoError(s.store.PutClaim(ctx, first))
		s.Require().NoError(s.store.PutClaim(ctx, second))

		found, err := s.store.GetClaim(ctx, subject, models.ClaimEligible)
		s.Require().NoError(err)
		s.Equal(second, *found)
	})

	s.Run("different claim types do not conflict", func() {
		eligible := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}
		accredited := models.Claim{Subject: subject, Type: models.ClaimAccredited, Value: models.NewClaimValue("false"), Expiry: 2000}
		s.Require().NoError(s.store.PutClaim(ctx, eligible))
		s.Require().NoError(s.store.PutClaim(ctx, accredited))

		found, err := s.store.GetClaim(ctx, subject, models.ClaimAccredited)
		s.Require().NoError(err)
		s.Equal(accredited, *found)
	})

	s.Run("expired claims are still physically present", func() {
		claim := models.Claim{Subject: subject, Type: models.ClaimKYCVerified, Value: models.ClaimValueTrue, Expiry: 1}
		s.Require().NoError(s.store.PutClaim(ctx, claim))

		found, err := s.store.GetClaim(ctx, subject, models.ClaimKYCVerified)
		s.Require().NoError(err)
		s.False(found.Live(1))
	})
}

func (s *InMemoryStoreSuite) TestIdentityMarker() {
	ctx := context.Background()
	subject := testAddress(2)

	s.Run("unset before any claim", func() {
		has, err := s.store.HasIdentity(ctx, subject)
		s.Require().NoError(err)
		s.False(has)
	})

	s.Run("set on first claim", func() {
		claim := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}
		s.Require().NoError(s.store.PutClaim(ctx, claim))

		has, err := s.store.HasIdentity(ctx, subject)
		s.Require().NoError(err)
		s.True(has)
	})

	s.Run("survives claim expiry", func() {
		// Identity distinguishes "never interacted" from "claims expired";
		// it is never unset.
		has, err := s.store.HasIdentity(ctx, subject)
		s.Require().NoError(err)
		s.True(has)
	})
}

func (s *InMemoryStoreSuite) TestFingerprints() {
	ctx := context.Background()
	fp := models.FingerprintProof([]byte("proof-1"))

	s.Run("unused initially", func() {
		used, err := s.store.IsFingerprintUsed(ctx, fp)
		s.Require().NoError(err)
		s.False(used)
	})

	s.Run("marks once", func() {
		s.Require().NoError(s.store.MarkFingerprintUsed(ctx, fp))

		used, err := s.store.IsFingerprintUsed(ctx, fp)
		s.Require().NoError(err)
		s.True(used)
	})

	s.Run("second mark fails", func() {
		err := s.store.MarkFingerprintUsed(ctx, fp)
		s.ErrorIs(err, ErrFingerprintUsed)
	})

	s.Run("distinct fingerprints do not collide", func() {
		s.NoError(s.store.MarkFingerprintUsed(ctx, models.FingerprintProof([]byte("proof-2"))))
	})
}

func (s *InMemoryStoreSuite) TestCommitSubmission() {
	ctx := context.Background()
	subject := testAddress(3)
	claim := models.Claim{Subject: subject, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}

	s.Run("commits fingerprint and claim together", func() {
		fp := models.FingerprintProof([]byte("commit-1"))
		s.Require().NoError(s.store.CommitSubmission(ctx, fp, claim))

		used, _ := s.store.IsFingerprintUsed(ctx, fp)
		s.True(used)
		found, err := s.store.GetClaim(ctx, subject, models.ClaimEligible)
		s.Require().NoError(err)
		s.Equal(claim, *found)
	})

	s.Run("replayed fingerprint leaves claim state untouched", func() {
		fp := models.FingerprintProof([]byte("commit-2"))
		other := testAddress(4)
		s.Require().NoError(s.store.CommitSubmission(ctx, fp, claim))

		replay := models.Claim{Subject: other, Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 9999}
		err := s.store.CommitSubmission(ctx, fp, replay)
		s.ErrorIs(err, ErrFingerprintUsed)

		_, err = s.store.GetClaim(ctx, other, models.ClaimEligible)
		s.ErrorIs(err, ErrNotFound)
		has, _ := s.store.HasIdentity(ctx, other)
		s.False(has)
	})

	s.Run("concurrent commits with one fingerprint admit exactly one", func() {
		fp := models.FingerprintProof([]byte("commit-race"))
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(n byte) {
				defer wg.Done()
				c := models.Claim{Subject: testAddress(100 + n), Type: models.ClaimEligible, Value: models.ClaimValueTrue, Expiry: 1000}
				if err := s.store.CommitSubmission(ctx, fp, c); err == nil {
					wins.Add(1)
				} else if !errors.Is(err, ErrFingerprintUsed) {
					s.T().Errorf("unexpected error: %v", err)
				}
			}(byte(i))
		}
		wg.Wait()
		s.Equal(int32(1), wins.Load())
	})
}
