package item_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo item.Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	repo, err := item.NewRedis(&item.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) seed(items ...*entities.Item) {
	for _, it := range items {
		_, err := s.repo.Create(s.ctx, item.CreateInput{Item: it})
		s.Require().NoError(err)
	}
}

func (s *RedisRepositoryTestSuite) TestListByOwner() {
	s.seed(
		&entities.Item{ID: "item_b", Name: "wood", Quantity: 2, Type: entities.ItemTypeResource, OwnerID: "npc_1"},
		&entities.Item{ID: "item_a", Name: "metal", Quantity: 1, Type: entities.ItemTypeResource, OwnerID: "npc_1"},
		&entities.Item{ID: "item_c", Name: "rations", Quantity: 5, Type: "food"},
	)

	s.Run("personal items ordered by id", func() {
		out, err := s.repo.ListByOwner(s.ctx, item.ListByOwnerInput{OwnerID: "npc_1"})
		s.Require().NoError(err)
		s.Require().Len(out.Items, 2)
		s.Equal("item_a", out.Items[0].ID)
		s.Equal("item_b", out.Items[1].ID)
	})

	s.Run("empty owner lists communal stock", func() {
		out, err := s.repo.ListByOwner(s.ctx, item.ListByOwnerInput{})
		s.Require().NoError(err)
		s.Require().Len(out.Items, 1)
		s.True(out.Items[0].Communal())
	})

	s.Run("list returns everything", func() {
		out, err := s.repo.List(s.ctx, item.ListInput{})
		s.Require().NoError(err)
		s.Len(out.Items, 3)
	})

	s.Run("owner with nothing gets an empty list", func() {
		out, err := s.repo.ListByOwner(s.ctx, item.ListByOwnerInput{OwnerID: "npc_2"})
		s.Require().NoError(err)
		s.Empty(out.Items)
	})
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	s.seed(&entities.Item{ID: "item_1", Name: "wood", Quantity: 1, Type: entities.ItemTypeResource})

	s.Run("owner change moves the item between indexes", func() {
		_, err := s.repo.Update(s.ctx, item.UpdateInput{
			Item: &entities.Item{ID: "item_1", Name: "wood", Quantity: 3, Type: entities.ItemTypeResource, OwnerID: "npc_1"},
		})
		s.Require().NoError(err)

		communal, err := s.repo.ListByOwner(s.ctx, item.ListByOwnerInput{})
		s.Require().NoError(err)
		s.Empty(communal.Items)

		owned, err := s.repo.ListByOwner(s.ctx, item.ListByOwnerInput{OwnerID: "npc_1"})
		s.Require().NoError(err)
		s.Require().Len(owned.Items, 1)
		s.Equal(3, owned.Items[0].Quantity)
	})

	s.Run("negative quantity is invalid", func() {
		_, err := s.repo.Update(s.ctx, item.UpdateInput{
			Item: &entities.Item{ID: "item_1", Name: "wood", Quantity: -1},
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown item is not found", func() {
		_, err := s.repo.Update(s.ctx, item.UpdateInput{Item: &entities.Item{ID: "item_x"}})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.seed(&entities.Item{ID: "item_1", Name: "wood", Quantity: 1, OwnerID: "npc_1"})

	_, err := s.repo.Delete(s.ctx, item.DeleteInput{ID: "item_1"})
	s.Require().NoError(err)

	s.False(s.mr.Exists("item:item_1"))
	ok, _ := s.mr.IsMember("items:owner:npc_1", "item_1")
	s.False(ok)

	_, err = s.repo.Delete(s.ctx, item.DeleteInput{ID: "item_1"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	s.seed(&entities.Item{ID: "item_1", Name: "wood", Quantity: 1})

	_, err := s.repo.Create(s.ctx, item.CreateInput{Item: &entities.Item{ID: "item_1", Name: "metal"}})
	s.True(errors.IsAlreadyExists(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
