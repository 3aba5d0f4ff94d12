package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo location.Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, _ := testutils.CreateTestRedisClient(s.T())
	repo, err := location.NewRedis(&location.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestCreateGetList() {
	for _, loc := range []*entities.Location{
		{ID: "ruins", Name: "Ruins", ResourceType: entities.ResourceMetal, DangerLevel: 3},
		{ID: "camp", Name: "Camp", ResourceType: entities.ResourceNone},
	} {
		_, err := s.repo.Create(s.ctx, location.CreateInput{Location: loc})
		s.Require().NoError(err)
	}

	s.Run("get returns the stored location", func() {
		out, err := s.repo.Get(s.ctx, location.GetInput{ID: "ruins"})
		s.Require().NoError(err)
		s.Equal(entities.ResourceMetal, out.Location.ResourceType)
		s.Equal(3, out.Location.DangerLevel)
	})

	s.Run("list is ordered by id", func() {
		out, err := s.repo.List(s.ctx, location.ListInput{})
		s.Require().NoError(err)
		s.Require().Len(out.Locations, 2)
		s.Equal("camp", out.Locations[0].ID)
		s.Equal("ruins", out.Locations[1].ID)
	})

	s.Run("unknown location is not found", func() {
		_, err := s.repo.Get(s.ctx, location.GetInput{ID: "moon"})
		s.True(errors.IsNotFound(err))
	})

	s.Run("empty id is invalid", func() {
		_, err := s.repo.Get(s.ctx, location.GetInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
