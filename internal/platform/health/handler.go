// Package health provides the relayer status endpoint.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"claimgate/internal/transport/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ChainConfig is the subset of configuration the status endpoint reports on.
// Values are reduced to configured/missing so secrets never leak.
type ChainConfig struct {
	RPCConfigured    bool
	OracleConfigured bool
	WalletConfigured bool
}

// Handler provides the health endpoint.
type Handler struct {
	startTime time.Time
	chain     ChainConfig
}

// New creates a new health handler.
func New(chain ChainConfig) *Handler {
	return &Handler{
		startTime: time.Now(),
		chain:     chain,
	}
}

// Register mounts the health route on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
}

// StatusResponse reports service liveness and chain configuration state.
type StatusResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Timestamp     string            `json:"timestamp"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Chain         map[string]string `json:"chain"`
}

// HandleStatus reports whether the chain collaborator is fully configured.
// The service stays "ok" even with a missing wallet: read paths keep working,
// only chain-writing operations degrade.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "ok",
		Version:       Version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Chain: map[string]string{
			"rpc":    configuredState(h.chain.RPCConfigured),
			"oracle": configuredState(h.chain.OracleConfigured),
			"wallet": configuredState(h.chain.WalletConfigured),
		},
	})
}

func configuredState(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
