package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"claimgate/internal/audit"
	"claimgate/internal/claims/models"
	"claimgate/internal/ledger"
	"claimgate/internal/platform/middleware"
	"claimgate/internal/transport/httputil"
	dErrors "claimgate/pkg/domain-errors"
)

// handleGrantAgent grants the agent role to an address. Granting an existing
// agent is a no-op that still reports success.
func (h *Handler) handleGrantAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GrantAgentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	addr, err := models.ParseAddress(req.Address)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.roles.GrantRole(ctx, ledger.AgentRole, addr); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeChainError, "failed to grant agent role"))
		return
	}

	h.logger.Info("agent role granted", "address", addr.String())
	h.emitAudit(ctx, audit.Event{
		Subject:  addr.String(),
		Action:   string(audit.EventAgentGranted),
		ClientIP: middleware.GetClientIP(ctx),
	})
	httputil.WriteJSON(w, http.StatusOK, AgentResponse{
		Success: true,
		Address: addr.String(),
		Agent:   true,
	})
}

// handleRevokeAgent removes the agent role from an address.
func (h *Handler) handleRevokeAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	addr, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.roles.RevokeRole(ctx, ledger.AgentRole, addr); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeChainError, "failed to revoke agent role"))
		return
	}

	h.logger.Info("agent role revoked", "address", addr.String())
	h.emitAudit(ctx, audit.Event{
		Subject:  addr.String(),
		Action:   string(audit.EventAgentRevoked),
		ClientIP: middleware.GetClientIP(ctx),
	})
	httputil.WriteJSON(w, http.StatusOK, AgentResponse{
		Success: true,
		Address: addr.String(),
		Agent:   false,
	})
}

// handleGetAgent reports whether an address currently holds the agent role.
func (h *Handler) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	addr, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	isAgent, err := h.roles.HasRole(ctx, ledger.AgentRole, addr)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeChainError, "failed to check agent role"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AgentResponse{
		Success: true,
		Address: addr.String(),
		Agent:   isAgent,
	})
}
