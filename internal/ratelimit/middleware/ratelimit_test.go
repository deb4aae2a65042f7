package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	platformMW "claimgate/internal/platform/middleware"
	"claimgate/internal/ratelimit/checker"
	"claimgate/internal/ratelimit/config"
	"claimgate/internal/ratelimit/models"
	"claimgate/internal/ratelimit/store/bucket"
)

type RateLimitMiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestRateLimitMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(RateLimitMiddlewareSuite))
}

func (s *RateLimitMiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *RateLimitMiddlewareSuite) newLimiter(maxRequests int) *checker.Service {
	svc, err := checker.New(bucket.NewInMemoryBucketStore(),
		checker.WithConfig(&config.Config{Window: time.Minute, MaxRequests: maxRequests}))
	s.Require().NoError(err)
	return svc
}

func (s *RateLimitMiddlewareSuite) serve(mw *Middleware, remoteAddr string) *httptest.ResponseRecorder {
	handler := platformMW.ClientMetadata(mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodPost, "/submit-proof", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func (s *RateLimitMiddlewareSuite) TestRateLimit() {
	s.Run("allows within limit and sets headers", func() {
		mw := New(s.newLimiter(2), s.logger)

		rec := s.serve(mw, "10.0.0.1:1234")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("2", rec.Header().Get("X-RateLimit-Limit"))
		s.Equal("1", rec.Header().Get("X-RateLimit-Remaining"))
		s.NotEmpty(rec.Header().Get("X-RateLimit-Reset"))
	})

	s.Run("eleventh request within the window is rejected", func() {
		mw := New(s.newLimiter(10), s.logger)

		for i := 0; i < 10; i++ {
			rec := s.serve(mw, "10.0.0.2:1234")
			s.Equal(http.StatusOK, rec.Code)
		}

		rec := s.serve(mw, "10.0.0.2:1234")
		s.Equal(http.StatusTooManyRequests, rec.Code)
		s.NotEmpty(rec.Header().Get("Retry-After"))
		s.Contains(rec.Body.String(), `"code":"RATE_LIMITED"`)
		s.Contains(rec.Body.String(), `"success":false`)
	})

	s.Run("clients are limited independently", func() {
		mw := New(s.newLimiter(1), s.logger)

		rec := s.serve(mw, "10.0.0.3:1234")
		s.Equal(http.StatusOK, rec.Code)

		rec = s.serve(mw, "10.0.0.4:1234")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("limiter failure rejects the request", func() {
		mw := New(failingLimiter{}, s.logger)

		rec := s.serve(mw, "10.0.0.5:1234")
		s.Equal(http.StatusTooManyRequests, rec.Code)
		s.Contains(rec.Body.String(), `"code":"RATE_LIMITED"`)
	})
}

type failingLimiter struct{}

func (failingLimiter) CheckIPRateLimit(context.Context, string) (*models.RateLimitResult, error) {
	return nil, errors.New("limiter down")
}
