package httptransport

import (
	"errors"
	"net/http"

	"claimgate/internal/audit"
	"claimgate/internal/claims/models"
	"claimgate/internal/ledger"
	"claimgate/internal/platform/middleware"
	"claimgate/internal/tracer"
	"claimgate/internal/transport/httputil"
)

// handleMint issues tokens to a verified recipient. The compliance check
// lives inside the token's transfer gate; an ineligible recipient surfaces
// as NOT_VERIFIED.
func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MintRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	recipient, err := models.ParseAddress(req.Recipient)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ctx, span := h.tracer.Start(ctx, tracer.SpanTokenMint,
		tracer.String(tracer.AttrSubject, recipient.String()),
	)
	var retErr error
	defer func() { span.End(retErr) }()

	txHash, err := h.token.Mint(ctx, recipient, req.Amount)
	if err != nil {
		retErr = err
		if errors.Is(err, ledger.ErrNotVerified) {
			h.emitAudit(ctx, audit.Event{
				Subject:  recipient.String(),
				Action:   string(audit.EventMintDenied),
				ClientIP: middleware.GetClientIP(ctx),
				Reason:   "recipient is not verified",
			})
		}
		httputil.WriteError(w, err)
		return
	}
	span.SetAttributes(tracer.String(tracer.AttrTxHash, txHash))

	h.emitAudit(ctx, audit.Event{
		Subject:  recipient.String(),
		Action:   string(audit.EventTokenMinted),
		TxHash:   txHash,
		ClientIP: middleware.GetClientIP(ctx),
	})

	httputil.WriteJSON(w, http.StatusOK, MintResponse{
		Success:   true,
		TxHash:    txHash,
		Recipient: recipient.String(),
		Amount:    req.Amount,
		Symbol:    h.token.Symbol(),
	})
}

// handleTransfer moves tokens between two verified holders.
func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TransferRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	from, err := models.ParseAddress(req.From)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	to, err := models.ParseAddress(req.To)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	txHash, err := h.token.Transfer(ctx, from, to, req.Amount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.emitAudit(ctx, audit.Event{
		Subject:  to.String(),
		Agent:    from.String(),
		Action:   string(audit.EventTokenTransferred),
		TxHash:   txHash,
		ClientIP: middleware.GetClientIP(ctx),
	})

	httputil.WriteJSON(w, http.StatusOK, TransferResponse{
		Success: true,
		TxHash:  txHash,
		From:    from.String(),
		To:      to.String(),
		Amount:  req.Amount,
		Symbol:  h.token.Symbol(),
	})
}
