package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"claimgate/internal/platform/health"
	"claimgate/internal/platform/metrics"
	"claimgate/internal/platform/middleware"
	ratelimitMW "claimgate/internal/ratelimit/middleware"
)

// RouterConfig carries the transport-level wiring the router needs beyond the
// handler itself.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Health         *health.Handler
	RateLimit      *ratelimitMW.Middleware
	AdminJWTSecret string
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	// Submission endpoints; rate limited before any other processing.
	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit.RateLimit)
		}
		r.Post("/submit-proof", h.handleSubmitProof)
	})

	r.Get("/status/{txHash}", h.handleStatus)

	// Token endpoints
	r.Post("/mint", h.handleMint)
	r.Post("/transfer", h.handleTransfer)

	r.Get("/relayer", h.handleRelayer)

	// Agent role management, admin only
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminJWTSecret, cfg.Logger))
		r.Post("/admin/agents", h.handleGrantAgent)
		r.Get("/admin/agents/{address}", h.handleGetAgent)
		r.Delete("/admin/agents/{address}", h.handleRevokeAgent)
	})

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}
