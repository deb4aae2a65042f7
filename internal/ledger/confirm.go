package ledger

import (
	"context"
	"time"

	ledgercontracts "claimgate/contracts/ledger"
	dErrors "claimgate/pkg/domain-errors"
)

const (
	defaultConfirmAttempts = 10
	defaultConfirmInterval = 500 * time.Millisecond
)

// ConfirmationResult reports the final state of a watched transaction.
type ConfirmationResult struct {
	TxHash        string
	Status        ledgercontracts.TxStatus
	BlockNumber   uint64
	Confirmations uint64
}

// Confirmer polls the journal for a receipt until one appears or the
// attempt budget is spent.
type Confirmer struct {
	journal  Journal
	attempts int
	interval time.Duration
}

// ConfirmerOption configures a Confirmer.
type ConfirmerOption func(*Confirmer)

// WithAttempts overrides the number of polling attempts.
func WithAttempts(n int) ConfirmerOption {
	return func(c *Confirmer) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithInterval overrides the polling interval.
func WithInterval(d time.Duration) ConfirmerOption {
	return func(c *Confirmer) {
		if d > 0 {
			c.interval = d
		}
	}
}

func NewConfirmer(journal Journal, opts ...ConfirmerOption) *Confirmer {
	c := &Confirmer{
		journal:  journal,
		attempts: defaultConfirmAttempts,
		interval: defaultConfirmInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WaitForConfirmation polls until the transaction has a receipt. A missing
// receipt after all attempts is not an error: the result carries a pending
// status and the caller decides whether to keep waiting.
func (c *Confirmer) WaitForConfirmation(ctx context.Context, txHash string) (*ConfirmationResult, error) {
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "confirmation wait cancelled")
			case <-time.After(c.interval):
			}
		}

		receipt, err := c.journal.GetReceipt(ctx, txHash)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeChainError, "failed to fetch receipt")
		}

		head, err := c.journal.HeadBlock(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeChainError, "failed to fetch head block")
		}

		return &ConfirmationResult{
			TxHash:        txHash,
			Status:        receipt.Status,
			BlockNumber:   receipt.BlockNumber,
			Confirmations: head - receipt.BlockNumber + 1,
		}, nil
	}

	return &ConfirmationResult{
		TxHash: txHash,
		Status: ledgercontracts.TxPending,
	}, nil
}
