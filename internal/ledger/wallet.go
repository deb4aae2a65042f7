package ledger

import (
	"encoding/hex"
	"strings"

	"claimgate/internal/claims/models"
	dErrors "claimgate/pkg/domain-errors"
)

// Wallet is the relaying agent's signing identity. The in-process ledger does
// not verify signatures; the wallet only needs a stable caller address, which
// is derived from the key material by keccak-256.
type Wallet struct {
	address models.Address
}

// ErrWalletNotConfigured degrades chain-writing operations when no signing
// key material is configured.
var ErrWalletNotConfigured = dErrors.New(dErrors.CodeWalletNotConfigured,
	"wallet not configured - set RELAYER_PRIVATE_KEY")

// NewWallet derives a wallet from hex-encoded key material. An empty key
// returns (nil, nil): callers hold a nil wallet and surface
// ErrWalletNotConfigured at use time rather than failing startup.
func NewWallet(hexKey string) (*Wallet, error) {
	if hexKey == "" {
		return nil, nil
	}
	raw := strings.TrimPrefix(hexKey, "0x")
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "relayer private key must be hex")
	}
	if len(key) != 32 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "relayer private key must be 32 bytes")
	}

	digest := models.Keccak256(key)
	var addr models.Address
	copy(addr[:], digest[12:])
	return &Wallet{address: addr}, nil
}

// Address returns the agent address.
func (w *Wallet) Address() models.Address {
	return w.address
}
