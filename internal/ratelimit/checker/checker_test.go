package checker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"claimgate/internal/ratelimit/config"
	"claimgate/internal/ratelimit/models"
	"claimgate/internal/ratelimit/store/bucket"
	dErrors "claimgate/pkg/domain-errors"
)

type CheckerSuite struct {
	suite.Suite
	ctx context.Context
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *CheckerSuite) TestNew() {
	s.Run("nil bucket store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "buckets store is required")
	})

	s.Run("valid store returns configured service", func() {
		svc, err := New(bucket.NewInMemoryBucketStore())
		s.NoError(err)
		s.NotNil(svc)
	})
}

func (s *CheckerSuite) TestCheckIPRateLimit() {
	s.Run("allows within configured limit", func() {
		svc, err := New(bucket.NewInMemoryBucketStore(),
			WithConfig(&config.Config{Window: time.Minute, MaxRequests: 2}))
		s.Require().NoError(err)

		for i := 0; i < 2; i++ {
			result, err := svc.CheckIPRateLimit(s.ctx, "1.2.3.4")
			s.Require().NoError(err)
			s.True(result.Allowed)
		}
	})

	s.Run("denies past configured limit", func() {
		svc, err := New(bucket.NewInMemoryBucketStore(),
			WithConfig(&config.Config{Window: time.Minute, MaxRequests: 1}))
		s.Require().NoError(err)

		_, err = svc.CheckIPRateLimit(s.ctx, "1.2.3.4")
		s.Require().NoError(err)

		result, err := svc.CheckIPRateLimit(s.ctx, "1.2.3.4")
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Positive(result.RetryAfter)
	})

	s.Run("limits are per client", func() {
		svc, err := New(bucket.NewInMemoryBucketStore(),
			WithConfig(&config.Config{Window: time.Minute, MaxRequests: 1}))
		s.Require().NoError(err)

		_, err = svc.CheckIPRateLimit(s.ctx, "1.1.1.1")
		s.Require().NoError(err)

		result, err := svc.CheckIPRateLimit(s.ctx, "2.2.2.2")
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("store failure maps to internal", func() {
		svc, err := New(failingBuckets{})
		s.Require().NoError(err)

		_, err = svc.CheckIPRateLimit(s.ctx, "1.2.3.4")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

type failingBuckets struct{}

func (failingBuckets) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("store down")
}
