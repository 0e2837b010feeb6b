package uistate_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/pkg/clock"
	"github.com/debnet/fallout/internal/repositories/uistate"
	"github.com/debnet/fallout/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Fixed
	repo  uistate.Repository
	ctx   context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.clock = &clock.Fixed{At: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.ctx = context.Background()

	repo, err := uistate.NewRedisRepository(&uistate.Config{
		Client: client,
		Clock:  s.clock,
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	client, _ := testutils.CreateTestRedisClient(s.T())

	testCases := []struct {
		name   string
		config *uistate.Config
		errMsg string
	}{
		{
			name:   "missing client",
			config: &uistate.Config{Clock: s.clock},
			errMsg: "Client",
		},
		{
			name:   "missing clock",
			config: &uistate.Config{Client: client},
			errMsg: "Clock",
		},
		{
			name:   "negative ttl",
			config: &uistate.Config{Client: client, Clock: s.clock, TTL: -time.Second},
			errMsg: "TTL",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := uistate.NewRedisRepository(tc.config)
			s.Error(err)
			s.Nil(repo)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *RedisRepositoryTestSuite) TestSetThenGet() {
	out, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "abc", Key: "activePanel", Value: "inventory"})
	s.Require().NoError(err)
	s.Equal("inventory", out.Entry.Value)
	s.Equal(s.clock.At, out.Entry.UpdatedAt)

	got, err := s.repo.Get(s.ctx, uistate.GetInput{Session: "abc", Key: "activePanel"})
	s.Require().NoError(err)
	s.Equal("inventory", got.Entry.Value)
	s.Equal("abc", got.Entry.Session)
	s.True(s.clock.At.Equal(got.Entry.UpdatedAt))
}

func (s *RedisRepositoryTestSuite) TestSetStoresJSONWithTTL() {
	_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "abc", Key: "activePanel", Value: "stats"})
	s.Require().NoError(err)

	raw, err := s.mr.Get("ui_state:abc:activePanel")
	s.Require().NoError(err)

	var stored map[string]any
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.Equal("stats", stored["value"])
	s.Equal("activePanel", stored["key"])
	s.Equal(time.Hour, s.mr.TTL("ui_state:abc:activePanel"))
}

func (s *RedisRepositoryTestSuite) TestLastWriteWins() {
	for _, v := range []string{"a", "b", "c"} {
		_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "abc", Key: "activePanel", Value: v})
		s.Require().NoError(err)
	}

	got, err := s.repo.Get(s.ctx, uistate.GetInput{Session: "abc", Key: "activePanel"})
	s.Require().NoError(err)
	s.Equal("c", got.Entry.Value)
}

func (s *RedisRepositoryTestSuite) TestSessionsAreIsolated() {
	_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "one", Key: "activePanel", Value: "a"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, uistate.GetInput{Session: "two", Key: "activePanel"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSessionSeparatorDoesNotCollide() {
	_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "a:b", Key: "c", Value: "first"})
	s.Require().NoError(err)
	_, err = s.repo.Set(s.ctx, uistate.SetInput{Session: "a", Key: "b:c", Value: "second"})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, uistate.GetInput{Session: "a:b", Key: "c"})
	s.Require().NoError(err)
	s.Equal("first", got.Entry.Value)

	got, err = s.repo.Get(s.ctx, uistate.GetInput{Session: "a", Key: "b:c"})
	s.Require().NoError(err)
	s.Equal("second", got.Entry.Value)

	s.True(s.mr.Exists("ui_state:a%3Ab:c"))
	s.True(s.mr.Exists("ui_state:a:b:c"))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	got, err := s.repo.Get(s.ctx, uistate.GetInput{Session: "abc", Key: "activePanel"})
	s.Nil(got)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetExpired() {
	_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "abc", Key: "activePanel", Value: "a"})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.Get(s.ctx, uistate.GetInput{Session: "abc", Key: "activePanel"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetCorrupted() {
	s.Require().NoError(s.mr.Set("ui_state:abc:activePanel", "{not json"))

	_, err := s.repo.Get(s.ctx, uistate.GetInput{Session: "abc", Key: "activePanel"})
	s.Error(err)
	s.Contains(err.Error(), "unmarshal")
}

func (s *RedisRepositoryTestSuite) TestRequiresSessionAndKey() {
	_, err := s.repo.Set(s.ctx, uistate.SetInput{Key: "activePanel", Value: "a"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, uistate.GetInput{Session: "abc"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestRedisDown() {
	s.mr.Close()

	_, err := s.repo.Set(s.ctx, uistate.SetInput{Session: "abc", Key: "activePanel", Value: "a"})
	s.Error(err)
	s.Contains(err.Error(), "failed to store ui state")
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
