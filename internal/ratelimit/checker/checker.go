package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"claimgate/internal/ratelimit/config"
	"claimgate/internal/ratelimit/models"
	dErrors "claimgate/pkg/domain-errors"
)

const keyPrefixIP = "ip"

// BucketStore defines the persistence interface for rate limit buckets.
type BucketStore interface {
	// Allow checks if a request is allowed and increments the counter.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

// Service handles rate limit checking for the submission endpoint.
type Service struct {
	buckets BucketStore
	logger  *slog.Logger
	config  *config.Config
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, fmt.Errorf("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		config:  config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIPRateLimit enforces the per-client submission limit.
func (s *Service) CheckIPRateLimit(ctx context.Context, ip string) (*models.RateLimitResult, error) {
	key := fmt.Sprintf("%s:%s", keyPrefixIP, ip)
	result, err := s.buckets.Allow(ctx, key, s.config.MaxRequests, s.config.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	if !result.Allowed && s.logger != nil {
		s.logger.Warn("rate limit exceeded",
			"ip", ip,
			"limit", s.config.MaxRequests,
			"window_seconds", int(s.config.Window.Seconds()),
		)
	}

	return result, nil
}
