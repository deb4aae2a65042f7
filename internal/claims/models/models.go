// Package models provides the type-safe claim primitives shared by the oracle
// write path and the compliance read path.
package models

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	dErrors "claimgate/pkg/domain-errors"
)

// Address is a 20-byte account identifier. Comparison is case-insensitive:
// parsing normalizes to the raw bytes, String renders lowercase hex.
type Address [20]byte

// ZeroAddress is the mint sender: a transfer from it is a token issuance.
var ZeroAddress Address

// ParseAddress validates the fixed-length 0x-prefixed hex shape at trust
// boundaries (handlers, API inputs).
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, ok := strings.CutPrefix(s, "0x")
	if !ok && !strings.HasPrefix(s, "0X") {
		return a, dErrors.New(dErrors.CodeInvalidAddress, "address must start with 0x")
	}
	if !ok {
		raw = s[2:]
	}
	if len(raw) != 40 {
		return a, dErrors.New(dErrors.CodeInvalidAddress, "address must be 40 hex characters")
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return a, dErrors.New(dErrors.CodeInvalidAddress, "address must be hex")
	}
	copy(a[:], decoded)
	return a, nil
}

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) IsZero() bool   { return a == ZeroAddress }

// ClaimType is the canonical fixed-width form of a claim category name:
// keccak256 of the upper-case name. Both the write path and the read path go
// through CanonicalClaimType so string constants never leak to call sites.
type ClaimType [32]byte

// CanonicalClaimType converts a claim category name to its canonical hash.
// Names are conventionally fixed upper-case strings; lookup is
// case-insensitive so "eligible" and "ELIGIBLE" canonicalize identically.
func CanonicalClaimType(name string) ClaimType {
	return ClaimType(Keccak256([]byte(strings.ToUpper(strings.TrimSpace(name)))))
}

// Well-known claim types.
var (
	ClaimEligible    = CanonicalClaimType("ELIGIBLE")
	ClaimAccredited  = CanonicalClaimType("ACCREDITED")
	ClaimKYCVerified = CanonicalClaimType("KYC_VERIFIED")
)

func (t ClaimType) String() string { return "0x" + hex.EncodeToString(t[:]) }

// ClaimValue is a short opaque value packed into 32 bytes, null-padded.
// Mirrors bytes32-string packing: at most 31 value bytes, remainder zero.
type ClaimValue [32]byte

const maxClaimValueLen = 31

// NewClaimValue packs a short string. Longer inputs are truncated to the
// 31-byte capacity rather than rejected, matching the write path of the
// ledger encoding.
func NewClaimValue(s string) ClaimValue {
	var v ClaimValue
	if len(s) > maxClaimValueLen {
		s = s[:maxClaimValueLen]
	}
	copy(v[:], s)
	return v
}

// ClaimValueTrue is the conventional affirmative claim value.
var ClaimValueTrue = NewClaimValue("true")

func (v ClaimValue) String() string {
	end := 0
	for end < len(v) && v[end] != 0 {
		end++
	}
	return string(v[:end])
}

func (v ClaimValue) IsZero() bool { return v == ClaimValue{} }

// EqualsFold compares the value against a string case-insensitively.
func (v ClaimValue) EqualsFold(s string) bool {
	return strings.EqualFold(v.String(), s)
}

// Claim is the durable (subject, claim-type) → (value, expiry) assertion.
// At most one live claim exists per pair; submissions overwrite.
type Claim struct {
	Subject Address
	Type    ClaimType
	Value   ClaimValue
	Expiry  uint64 // seconds since epoch
}

// Live reports whether the claim has not yet expired at the given instant.
// The boundary is exclusive: a claim is dead from the exact expiry second on.
func (c Claim) Live(now uint64) bool {
	return c.Expiry > now
}

// Fingerprint is the derived identifier of an accepted submission, used for
// permanent replay protection.
type Fingerprint [32]byte

// FingerprintProof derives the fingerprint of the exact proof bytes presented.
func FingerprintProof(proof []byte) Fingerprint {
	return Fingerprint(Keccak256(proof))
}

func (f Fingerprint) String() string { return "0x" + hex.EncodeToString(f[:]) }

// Keccak256 computes the legacy Keccak-256 digest (the pre-NIST padding
// variant used by EVM ledgers).
func Keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}
