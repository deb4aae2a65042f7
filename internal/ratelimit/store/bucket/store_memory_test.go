package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BucketStoreSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *InMemoryBucketStore
}

func TestBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(BucketStoreSuite))
}

func (s *BucketStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemoryBucketStore(WithClock(func() time.Time { return s.now }))
}

func (s *BucketStoreSuite) TestAllow() {
	s.Run("allows up to the limit", func() {
		for i := 0; i < 3; i++ {
			result, err := s.store.Allow(s.ctx, "ip:1.2.3.4", 3, time.Minute)
			s.Require().NoError(err)
			s.True(result.Allowed)
			s.Equal(3-i-1, result.Remaining)
		}
	})

	s.Run("denies past the limit with retry after", func() {
		key := "ip:5.6.7.8"
		for i := 0; i < 2; i++ {
			_, err := s.store.Allow(s.ctx, key, 2, time.Minute)
			s.Require().NoError(err)
		}

		result, err := s.store.Allow(s.ctx, key, 2, time.Minute)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Zero(result.Remaining)
		s.Equal(60, result.RetryAfter)
	})

	s.Run("window slides as old entries expire", func() {
		key := "ip:9.9.9.9"
		_, err := s.store.Allow(s.ctx, key, 1, time.Minute)
		s.Require().NoError(err)

		result, err := s.store.Allow(s.ctx, key, 1, time.Minute)
		s.Require().NoError(err)
		s.False(result.Allowed)

		s.now = s.now.Add(time.Minute + time.Second)
		result, err = s.store.Allow(s.ctx, key, 1, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("keys do not share buckets", func() {
		_, err := s.store.Allow(s.ctx, "ip:a", 1, time.Minute)
		s.Require().NoError(err)

		result, err := s.store.Allow(s.ctx, "ip:b", 1, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}

func (s *BucketStoreSuite) TestReset() {
	key := "ip:reset"
	_, err := s.store.Allow(s.ctx, key, 1, time.Minute)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(s.ctx, key))

	result, err := s.store.Allow(s.ctx, key, 1, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *BucketStoreSuite) TestGetCurrentCount() {
	key := "ip:count"
	count, err := s.store.GetCurrentCount(s.ctx, key)
	s.Require().NoError(err)
	s.Zero(count)

	for i := 0; i < 4; i++ {
		_, err := s.store.Allow(s.ctx, key, 10, time.Minute)
		s.Require().NoError(err)
	}

	count, err = s.store.GetCurrentCount(s.ctx, key)
	s.Require().NoError(err)
	s.Equal(4, count)
}
