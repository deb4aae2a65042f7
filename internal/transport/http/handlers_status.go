package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ledgercontracts "claimgate/contracts/ledger"
	"claimgate/internal/transport/httputil"
	dErrors "claimgate/pkg/domain-errors"
)

// handleStatus reports the lifecycle state of a submitted transaction.
// A hash the journal has never seen reports as pending rather than 404: the
// submission path is fire-and-forget, so the receipt may simply not exist yet.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txHash := chi.URLParam(r, "txHash")
	if !httputil.ValidTxHash(txHash) {
		httputil.WriteErrorMessage(w, http.StatusBadRequest,
			"Invalid transaction hash format", "BAD_REQUEST")
		return
	}

	receipt, err := h.receipts.GetReceipt(ctx, txHash)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			httputil.WriteJSON(w, http.StatusOK, StatusResponse{
				Success: true,
				TxHash:  txHash,
				Status:  string(ledgercontracts.TxPending),
			})
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeChainError, "failed to fetch receipt"))
		return
	}

	head, err := h.receipts.HeadBlock(ctx)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeChainError, "failed to fetch head block"))
		return
	}

	confirmations := head - receipt.BlockNumber + 1
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Success:       true,
		TxHash:        txHash,
		Status:        string(receipt.Status),
		BlockNumber:   &receipt.BlockNumber,
		Confirmations: &confirmations,
	})
}
