package ledger

import (
	"context"
	"fmt"
	"sync"

	"claimgate/internal/claims/models"
	dErrors "claimgate/pkg/domain-errors"
)

// TransferGate is the compliance hook consulted before any value movement.
// A mint is a transfer from the zero address.
type TransferGate interface {
	CanTransfer(ctx context.Context, from, to models.Address, amount uint64) (bool, error)
}

// ErrNotVerified rejects value movement involving a subject without a live
// eligibility claim.
var ErrNotVerified = dErrors.New(dErrors.CodeNotVerified, "recipient is not verified")

// Token is the compliance-gated asset ledger. Every successful mint or
// transfer is recorded in the journal so callers get a transaction reference.
type Token struct {
	symbol  string
	gate    TransferGate
	journal Journal

	mu       sync.RWMutex
	balances map[models.Address]uint64
}

// NewToken creates a token with the given symbol. The gate is required:
// an ungated token would bypass the compliance engine entirely.
func NewToken(symbol string, gate TransferGate, journal Journal) *Token {
	if gate == nil {
		panic("ledger.NewToken: transfer gate is required")
	}
	if journal == nil {
		panic("ledger.NewToken: journal is required")
	}
	return &Token{
		symbol:   symbol,
		gate:     gate,
		journal:  journal,
		balances: make(map[models.Address]uint64),
	}
}

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.symbol }

// BalanceOf returns the current balance of addr.
func (t *Token) BalanceOf(addr models.Address) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balances[addr]
}

// Mint issues amount to a verified recipient and returns the tx reference.
func (t *Token) Mint(ctx context.Context, to models.Address, amount uint64) (string, error) {
	allowed, err := t.gate.CanTransfer(ctx, models.ZeroAddress, to, amount)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeChainError, "compliance check failed")
	}
	if !allowed {
		return "", ErrNotVerified
	}

	t.mu.Lock()
	t.balances[to] += amount
	t.mu.Unlock()

	payload := fmt.Sprintf("mint|%s|%s|%d", t.symbol, to, amount)
	txHash, err := t.journal.Record(ctx, []byte(payload))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeChainError, "failed to record mint")
	}
	return txHash, nil
}

// Transfer moves amount between two verified holders. The sender is
// re-checked even though it passed compliance when it received funds, because
// its claim may have since expired.
func (t *Token) Transfer(ctx context.Context, from, to models.Address, amount uint64) (string, error) {
	allowed, err := t.gate.CanTransfer(ctx, from, to, amount)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeChainError, "compliance check failed")
	}
	if !allowed {
		return "", ErrNotVerified
	}

	t.mu.Lock()
	if t.balances[from] < amount {
		t.mu.Unlock()
		return "", dErrors.New(dErrors.CodeInvalidInput, "insufficient balance")
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	t.mu.Unlock()

	payload := fmt.Sprintf("transfer|%s|%s|%s|%d", t.symbol, from, to, amount)
	txHash, err := t.journal.Record(ctx, []byte(payload))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeChainError, "failed to record transfer")
	}
	return txHash, nil
}
