package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/clock"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo memory.Repository
	now  time.Time
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, _ := testutils.CreateTestRedisClient(s.T())
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo, err := memory.NewRedis(&memory.RedisConfig{
		Client: client,
		Clock:  &clock.Fixed{At: s.now},
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) add(id, npcName string, importance int) {
	_, err := s.repo.Create(s.ctx, memory.CreateInput{Memory: &entities.Memory{
		ID:         id,
		NPCName:    npcName,
		Text:       fmt.Sprintf("memory %s", id),
		Importance: importance,
	}})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	s.Run("stamps created at", func() {
		m := &entities.Memory{ID: "mem_1", NPCName: "Mara", Text: "saw smoke", Importance: 3}
		out, err := s.repo.Create(s.ctx, memory.CreateInput{Memory: m})
		s.Require().NoError(err)
		s.Equal(s.now, out.Memory.CreatedAt)
	})

	s.Run("importance above the ceiling is rejected", func() {
		_, err := s.repo.Create(s.ctx, memory.CreateInput{Memory: &entities.Memory{
			ID: "mem_2", NPCName: "Mara", Text: "loud", Importance: 11,
		}})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing text is rejected", func() {
		_, err := s.repo.Create(s.ctx, memory.CreateInput{Memory: &entities.Memory{
			ID: "mem_3", NPCName: "Mara", Importance: 5,
		}})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestListTop() {
	s.add("mem_001", "Mara", 2)
	s.add("mem_002", "Mara", 10)
	s.add("mem_003", "Mara", 5)
	s.add("mem_004", "Mara", 5)
	s.add("mem_005", "Jonah", 9)

	s.Run("orders by importance then newest", func() {
		out, err := s.repo.ListTop(s.ctx, memory.ListTopInput{NPCName: "Mara", Limit: 3})
		s.Require().NoError(err)
		s.Require().Len(out.Memories, 3)
		s.Equal("mem_002", out.Memories[0].ID)
		s.Equal("mem_004", out.Memories[1].ID)
		s.Equal("mem_003", out.Memories[2].ID)
	})

	s.Run("memories are scoped by npc name", func() {
		out, err := s.repo.ListTop(s.ctx, memory.ListTopInput{NPCName: "Jonah", Limit: 10})
		s.Require().NoError(err)
		s.Require().Len(out.Memories, 1)
		s.Equal(9, out.Memories[0].Importance)
	})

	s.Run("unknown npc has no memories", func() {
		out, err := s.repo.ListTop(s.ctx, memory.ListTopInput{NPCName: "Nobody", Limit: 5})
		s.Require().NoError(err)
		s.Empty(out.Memories)
	})

	s.Run("zero limit returns nothing", func() {
		out, err := s.repo.ListTop(s.ctx, memory.ListTopInput{NPCName: "Mara"})
		s.Require().NoError(err)
		s.Empty(out.Memories)
	})
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
