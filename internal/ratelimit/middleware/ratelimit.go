package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	platformMW "claimgate/internal/platform/middleware"
	"claimgate/internal/platform/metrics"
	"claimgate/internal/ratelimit/models"
	"claimgate/internal/transport/httputil"
)

type RateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip string) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter RateLimiter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Middleware.
type Option func(*Middleware)

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RateLimit enforces the per-client submission limit. A limiter failure
// fails closed: when the counter cannot be consulted the request is
// rejected, since the limit may only ever err on the strict side.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := platformMW.GetClientIP(ctx)

		result, err := m.limiter.CheckIPRateLimit(ctx, ip)
		if err != nil {
			m.logger.Error("failed to check rate limit", "error", err)
			if m.metrics != nil {
				m.metrics.RateLimited.Inc()
			}
			httputil.WriteErrorMessage(w, http.StatusTooManyRequests,
				"Too many requests, please try again later", "RATE_LIMITED")
			return
		}

		// Add headers regardless of outcome
		addRateLimitHeaders(w, result)

		if !result.Allowed {
			if m.metrics != nil {
				m.metrics.RateLimited.Inc()
			}
			writeRateLimitExceeded(w, result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// addRateLimitHeaders adds X-RateLimit-* headers to the response.
func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteErrorMessage(w, http.StatusTooManyRequests,
		"Too many requests, please try again later", "RATE_LIMITED")
}
