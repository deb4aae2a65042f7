package httptransport

import (
	"net/http"

	"claimgate/internal/ledger"
	"claimgate/internal/transport/httputil"
)

// handleRelayer reports the relaying agent's identity and activity. Without
// key material the endpoint degrades to WALLET_NOT_CONFIGURED instead of
// serving a zero address.
func (h *Handler) handleRelayer(w http.ResponseWriter, r *http.Request) {
	if h.wallet == nil {
		httputil.WriteError(w, ledger.ErrWalletNotConfigured)
		return
	}

	addr := h.wallet.Address()
	httputil.WriteJSON(w, http.StatusOK, RelayerResponse{
		Success: true,
		Address: addr.String(),
		Balance: h.token.BalanceOf(addr),
		Nonce:   h.receipts.TxCount(),
	})
}
