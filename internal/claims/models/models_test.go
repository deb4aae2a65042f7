package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelsSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

func (s *ModelsSuite) TestParseAddress() {
	s.Run("accepts well-formed address", func() {
		a, err := ParseAddress("0x52908400098527886E0F7030069857D2E4169EE7")
		s.Require().NoError(err)
		s.Equal("0x52908400098527886e0f7030069857d2e4169ee7", a.String())
	})

	s.Run("is case-insensitive", func() {
		upper, err := ParseAddress("0xDE709F2102306220921060314715629080E2FB77")
		s.Require().NoError(err)
		lower, err := ParseAddress("0xde709f2102306220921060314715629080e2fb77")
		s.Require().NoError(err)
		s.Equal(upper, lower)
	})

	s.Run("rejects missing prefix", func() {
		_, err := ParseAddress("52908400098527886E0F7030069857D2E4169EE7")
		s.Error(err)
	})

	s.Run("rejects wrong length", func() {
		_, err := ParseAddress("0x1234")
		s.Error(err)
	})

	s.Run("rejects non-hex", func() {
		_, err := ParseAddress("0xzz908400098527886E0F7030069857D2E4169EE7")
		s.Error(err)
	})

	s.Run("zero address is zero", func() {
		a, err := ParseAddress("0x0000000000000000000000000000000000000000")
		s.Require().NoError(err)
		s.True(a.IsZero())
	})
}

func (s *ModelsSuite) TestCanonicalClaimType() {
	s.Run("is keccak of upper-case name", func() {
		// keccak256("ELIGIBLE"), matching the on-ledger canonical form.
		s.Equal(
			"0x2e40d69e29c9efa1ada939363ec2205a113c24ffea6dde7fe589a69764db9953",
			CanonicalClaimType("ELIGIBLE").String(),
		)
	})

	s.Run("lookup is case-insensitive", func() {
		s.Equal(ClaimEligible, CanonicalClaimType("eligible"))
		s.Equal(ClaimEligible, CanonicalClaimType("  Eligible "))
	})

	s.Run("distinct names do not collide", func() {
		s.NotEqual(ClaimEligible, ClaimAccredited)
		s.NotEqual(ClaimAccredited, ClaimKYCVerified)
	})
}

func (s *ModelsSuite) TestClaimValue() {
	s.Run("round-trips short strings", func() {
		s.Equal("true", NewClaimValue("true").String())
		s.Equal("false", NewClaimValue("false").String())
	})

	s.Run("truncates past 31 bytes", func() {
		long := "AAAAAAAAAABBBBBBBBBBCCCCCCCCCCDD" // 32 bytes
		s.Len(NewClaimValue(long).String(), 31)
	})

	s.Run("compares case-insensitively", func() {
		s.True(NewClaimValue("TRUE").EqualsFold("true"))
		s.False(NewClaimValue("false").EqualsFold("true"))
	})

	s.Run("empty value is zero", func() {
		s.True(NewClaimValue("").IsZero())
		s.False(ClaimValueTrue.IsZero())
	})
}

func (s *ModelsSuite) TestClaimLive() {
	claim := Claim{Expiry: 1000}

	s.Run("live strictly before expiry", func() {
		s.True(claim.Live(999))
	})

	s.Run("dead at the expiry second", func() {
		s.False(claim.Live(1000))
	})

	s.Run("dead after expiry", func() {
		s.False(claim.Live(1001))
	})
}

func (s *ModelsSuite) TestFingerprint() {
	s.Run("same proof bytes collide", func() {
		s.Equal(FingerprintProof([]byte("p1")), FingerprintProof([]byte("p1")))
	})

	s.Run("different proof bytes do not", func() {
		s.NotEqual(FingerprintProof([]byte("p1")), FingerprintProof([]byte("p2")))
	})
}
