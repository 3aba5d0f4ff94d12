package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
	"github.com/KirkDiggler/agent-sandbox/internal/scenario"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils"
)

type ScenarioTestSuite struct {
	suite.Suite
	repos *testutils.Repositories
	ctx   context.Context
}

func (s *ScenarioTestSuite) SetupTest() {
	s.repos = testutils.NewRedisRepositories(s.T())
	s.ctx = context.Background()
}

func (s *ScenarioTestSuite) TestDefault() {
	sc, err := scenario.Default()
	s.Require().NoError(err)

	s.Len(sc.Locations, 4)
	s.Len(sc.NPCs, 4)
	s.Equal(1, sc.World.Turn)

	byID := map[string]*entities.Location{}
	for _, l := range sc.Locations {
		byID[l.ID] = l
	}
	s.Equal(entities.ResourceWood, byID["forest"].ResourceType)
	s.Equal(3, byID["ruins"].DangerLevel)
	s.Equal(entities.ResourceNone, byID["camp"].ResourceType)

	for _, n := range sc.NPCs {
		s.True(n.Alive, n.Name)
	}
}

func (s *ScenarioTestSuite) TestSeed() {
	sc, err := scenario.Default()
	s.Require().NoError(err)

	seeder, err := scenario.NewSeeder(&scenario.SeederConfig{
		NPCRepo:      s.repos.NPC,
		LocationRepo: s.repos.Location,
		ItemRepo:     s.repos.Item,
		WorldRepo:    s.repos.World,
	})
	s.Require().NoError(err)
	s.Require().NoError(seeder.Seed(s.ctx, sc))

	npcs, err := s.repos.NPC.List(s.ctx, npc.ListInput{})
	s.Require().NoError(err)
	s.Len(npcs.NPCs, 4)
	s.Equal("Ada", npcs.NPCs[0].Name)

	locs, err := s.repos.Location.List(s.ctx, location.ListInput{})
	s.Require().NoError(err)
	s.Len(locs.Locations, 4)

	communal, err := s.repos.Item.ListByOwner(s.ctx, item.ListByOwnerInput{})
	s.Require().NoError(err)
	s.Len(communal.Items, 2)

	w, err := s.repos.World.Get(s.ctx, world.GetInput{})
	s.Require().NoError(err)
	s.Equal(1, w.World.Turn)
	s.Equal("Overcast", w.World.Weather)

	s.Run("seeding twice collides", func() {
		err := seeder.Seed(s.ctx, sc)
		s.True(errors.IsAlreadyExists(err))
	})
}

func (s *ScenarioTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "tiny.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
world: {turn: 5, weather: Snow}
locations:
  - {id: camp, name: Camp, resource_type: none}
npcs:
  - {id: npc_1, name: Solo, location_id: camp, alive: true, status: {hp: 10}}
`), 0o600))

	sc, err := scenario.Load(path)
	s.Require().NoError(err)
	s.Equal(5, sc.World.Turn)
	s.Equal(10, sc.NPCs[0].Status.Health)
}

func (s *ScenarioTestSuite) TestValidation() {
	s.Run("unknown start location", func() {
		_, err := scenario.Parse([]byte(`
locations: [{id: camp}]
npcs: [{id: npc_1, name: A, location_id: moon}]
`))
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown item owner", func() {
		_, err := scenario.Parse([]byte(`
locations: [{id: camp}]
items: [{id: item_1, name: wood, owner_id: npc_x}]
`))
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("malformed yaml", func() {
		_, err := scenario.Parse([]byte("locations: [:"))
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing file", func() {
		_, err := scenario.Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
		s.Error(err)
	})
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}
