package ledger

// ContractVersion identifies the schema for ledger records shared across services.
const ContractVersion = "v0.1.0"

// TxStatus is the lifecycle state of a submitted transaction.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Receipt carries the confirmation evidence for a committed transaction.
type Receipt struct {
	TxHash      string   `json:"tx_hash"`
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"block_number"`
}
