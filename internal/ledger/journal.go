package ledger

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"sync"

	ledgercontracts "claimgate/contracts/ledger"
	"claimgate/internal/claims/models"
	dErrors "claimgate/pkg/domain-errors"
)

// ErrReceiptNotFound is returned for transactions the journal never recorded.
// Callers treat an unknown hash as a still-pending transaction.
var ErrReceiptNotFound = dErrors.New(dErrors.CodeNotFound, "no receipt for transaction")

// Journal assigns transaction references and tracks receipts. Each recorded
// transaction occupies its own block; confirmations grow as later
// transactions advance the head.
type Journal interface {
	// Record commits a transaction payload and returns its hash.
	Record(ctx context.Context, payload []byte) (string, error)

	// RecordFailed records a transaction that reverted, so its receipt
	// reports failure instead of confirmation.
	RecordFailed(ctx context.Context, payload []byte) (string, error)

	// GetReceipt returns the receipt for a recorded transaction, or
	// ErrReceiptNotFound.
	GetReceipt(ctx context.Context, txHash string) (*ledgercontracts.Receipt, error)

	// HeadBlock returns the number of the most recent block.
	HeadBlock(ctx context.Context) (uint64, error)
}

// InMemoryJournal is the mutex-guarded reference Journal.
type InMemoryJournal struct {
	mu       sync.RWMutex
	head     uint64
	nonce    uint64
	receipts map[string]ledgercontracts.Receipt
}

// NewInMemoryJournal creates an empty journal.
func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{receipts: make(map[string]ledgercontracts.Receipt)}
}

func (j *InMemoryJournal) Record(_ context.Context, payload []byte) (string, error) {
	return j.record(payload, ledgercontracts.TxConfirmed), nil
}

func (j *InMemoryJournal) RecordFailed(_ context.Context, payload []byte) (string, error) {
	return j.record(payload, ledgercontracts.TxFailed), nil
}

// record derives the hash from the payload and a monotonic nonce so identical
// payloads submitted twice still yield distinct transaction references.
func (j *InMemoryJournal) record(payload []byte, status ledgercontracts.TxStatus) string {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.nonce++
	j.head++

	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], j.nonce)
	digest := models.Keccak256(append(append([]byte{}, payload...), nonceBytes[:]...))
	txHash := "0x" + hex.EncodeToString(digest[:])

	j.receipts[txHash] = ledgercontracts.Receipt{
		TxHash:      txHash,
		Status:      status,
		BlockNumber: j.head,
	}
	return txHash
}

func (j *InMemoryJournal) GetReceipt(_ context.Context, txHash string) (*ledgercontracts.Receipt, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	receipt, ok := j.receipts[txHash]
	if !ok {
		return nil, ErrReceiptNotFound
	}
	return &receipt, nil
}

func (j *InMemoryJournal) HeadBlock(_ context.Context) (uint64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.head, nil
}

// TxCount reports how many transactions the journal has recorded.
func (j *InMemoryJournal) TxCount() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.nonce
}
