package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/engine"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

// fixedRoller always returns the same face
type fixedRoller struct {
	face int
}

func (r *fixedRoller) Roll(_ int) (int, error) { return r.face, nil }

func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.face
	}
	return out, nil
}

type EngineTestSuite struct {
	suite.Suite
	roller *fixedRoller
	engine engine.Engine
	ctx    context.Context
	forest *entities.Location
	camp   *entities.Location
}

func (s *EngineTestSuite) SetupTest() {
	s.roller = &fixedRoller{face: 1000}
	e, err := engine.New(&engine.Config{Roller: s.roller})
	s.Require().NoError(err)
	s.engine = e
	s.ctx = context.Background()
	s.forest = &entities.Location{ID: "forest", Name: "Forest", ResourceType: entities.ResourceWood, DangerLevel: 1}
	s.camp = &entities.Location{ID: "camp", Name: "Camp", ResourceType: entities.ResourceNone}
}

func (s *EngineTestSuite) npc(status entities.Status) *entities.NPC {
	return &entities.NPC{ID: "npc_1", Name: "Mara", Status: status, Alive: true}
}

func (s *EngineTestSuite) resolve(action decision.ActionType, loc *entities.Location, status entities.Status, inv ...*entities.Item) *engine.ResolveOutput {
	d := decision.Defaults(loc.ID)
	d.Action = action
	out, err := s.engine.Resolve(s.ctx, &engine.ResolveInput{
		NPC:       s.npc(status),
		Decision:  &d,
		Location:  loc,
		Inventory: inv,
	})
	s.Require().NoError(err)
	return out
}

func (s *EngineTestSuite) TestGather() {
	s.Run("success adds an item and extra hunger", func() {
		out := s.resolve(decision.ActionGather, s.forest, entities.Status{Health: 50, Hunger: 20, Sanity: 50})
		s.Equal(engine.EffectGathered, out.Effect)
		s.Require().NotNil(out.Gained)
		s.Equal("wood", out.Gained.Name)
		s.Equal(1, out.Gained.Quantity)
		s.Equal(30, out.Status.Hunger)
		s.Equal(50, out.Status.Health)
	})

	s.Run("failure costs health", func() {
		s.roller.face = 50 // draw 0.049 < 0.1
		out := s.resolve(decision.ActionGather, s.forest, entities.Status{Health: 50, Hunger: 20, Sanity: 50})
		s.Equal(engine.EffectGatherFailed, out.Effect)
		s.Nil(out.Gained)
		s.Equal(45, out.Status.Health)
		s.Equal(25, out.Status.Hunger)
	})

	s.Run("threshold is inclusive", func() {
		s.roller.face = 101 // draw exactly 0.1
		out := s.resolve(decision.ActionGather, s.forest, entities.Status{Health: 50})
		s.Equal(engine.EffectGathered, out.Effect)
	})

	s.Run("barren location is a failed gather", func() {
		out := s.resolve(decision.ActionGather, s.camp, entities.Status{Health: 50, Hunger: 0})
		s.Equal(engine.EffectGatherFailed, out.Effect)
		s.Nil(out.Gained)
		s.Equal(45, out.Status.Health)
		s.Equal(engine.BaseHungerPerTurn, out.Status.Hunger)
	})
}

func (s *EngineTestSuite) TestGatherThresholdPerDanger() {
	for danger := 0; danger <= 5; danger++ {
		loc := &entities.Location{ID: "ruins", Name: "Ruins", ResourceType: entities.ResourceMetal, DangerLevel: danger}
		boundary := danger * engine.DangerFailurePerMille

		s.roller.face = boundary + 1 // draw exactly danger/10
		ok, err := s.engine.GatherSucceeds(s.ctx, &engine.GatherCheck{DangerLevel: danger, ResourceType: loc.ResourceType})
		s.Require().NoError(err)
		s.True(ok, "danger %d at the boundary", danger)

		if boundary > 0 {
			s.roller.face = boundary
			ok, err = s.engine.GatherSucceeds(s.ctx, &engine.GatherCheck{DangerLevel: danger, ResourceType: loc.ResourceType})
			s.Require().NoError(err)
			s.False(ok, "danger %d just below the boundary", danger)
		}
	}
}

func (s *EngineTestSuite) TestBuild() {
	wood := &entities.Item{ID: "item_b", Name: "wood", Quantity: 2, OwnerID: "npc_1"}
	food := &entities.Item{ID: "item_a", Name: "food", Quantity: 1, OwnerID: "npc_1"}

	s.Run("consumes the first material at camp", func() {
		out := s.resolve(decision.ActionBuild, s.camp, entities.Status{Health: 50}, food, wood)
		s.Equal(engine.EffectBuilt, out.Effect)
		s.Equal(engine.BuildProgress, out.Construction)
		s.Equal(wood, out.Consumed)
	})

	s.Run("away from camp is a no-op", func() {
		out := s.resolve(decision.ActionBuild, s.forest, entities.Status{Health: 50}, wood)
		s.Equal(engine.EffectBuildNoop, out.Effect)
		s.Zero(out.Construction)
		s.Nil(out.Consumed)
	})

	s.Run("without materials is a no-op", func() {
		out := s.resolve(decision.ActionBuild, s.camp, entities.Status{Health: 50}, food)
		s.Equal(engine.EffectBuildNoop, out.Effect)
		s.Nil(out.Consumed)
	})
}

func (s *EngineTestSuite) TestRest() {
	out := s.resolve(decision.ActionRest, s.camp, entities.Status{Health: 98, Hunger: 10, Sanity: 40})
	s.Equal(engine.EffectRested, out.Effect)
	s.Equal(100, out.Status.Health)
	s.Equal(45, out.Status.Sanity)
	s.Equal(15, out.Status.Hunger)
}

func (s *EngineTestSuite) TestFlavorOnlyActions() {
	for _, a := range engine.FlavorOnlyActions {
		out := s.resolve(a, s.camp, entities.Status{Health: 50, Hunger: 10, Sanity: 50})
		s.Equal(engine.EffectNone, out.Effect, a)
		s.Equal(entities.Status{Health: 50, Hunger: 15, Sanity: 50}, out.Status, a)
		s.Nil(out.Gained)
		s.Zero(out.Construction)
	}
}

func (s *EngineTestSuite) TestFlavorOnlyActionsAreAdvertisedAsSuch() {
	for _, info := range decision.Vocabulary {
		s.Equal(engine.IsFlavorOnly(info.Type), strings.Contains(info.Effect, "(no effect yet)"), info.Type)
	}
}

func (s *EngineTestSuite) TestUnrecognizedAction() {
	out := s.resolve(decision.ActionType("DANCE"), s.camp, entities.Status{Health: 50})
	s.Equal(engine.EffectNone, out.Effect)
	s.Contains(out.Description, "is doing DANCE")
}

func (s *EngineTestSuite) TestDeathAndClamp() {
	s.roller.face = 1
	out := s.resolve(decision.ActionGather, s.forest, entities.Status{Health: 3, Hunger: 99, Sanity: 0})
	s.Equal(0, out.Status.Health)
	s.Equal(100, out.Status.Hunger)
	s.True(out.Died)
}

func (s *EngineTestSuite) TestResolveValidation() {
	_, err := s.engine.Resolve(s.ctx, &engine.ResolveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = engine.New(&engine.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestClamp(t *testing.T) {
	for _, delta := range []int{-1000, -101, -1, 0, 1, 50, 101, 1000} {
		for _, start := range []int{0, 50, 100} {
			v := engine.Clamp(start + delta)
			assert.GreaterOrEqual(t, v, entities.StatMin)
			assert.LessOrEqual(t, v, entities.StatMax)
		}
	}
}

func TestGatherFailureRate(t *testing.T) {
	e, err := engine.New(&engine.Config{Roller: dice.DefaultRoller})
	require.NoError(t, err)
	ctx := context.Background()

	const trials = 10000
	failures := 0
	for i := 0; i < trials; i++ {
		ok, err := e.GatherSucceeds(ctx, &engine.GatherCheck{DangerLevel: 3, ResourceType: entities.ResourceMetal})
		require.NoError(t, err)
		if !ok {
			failures++
		}
	}
	rate := float64(failures) / trials
	assert.InDelta(t, 0.30, rate, 0.03)

	for i := 0; i < 1000; i++ {
		ok, err := e.GatherSucceeds(ctx, &engine.GatherCheck{DangerLevel: 0, ResourceType: entities.ResourceWood})
		require.NoError(t, err)
		require.True(t, ok, "danger 0 must never fail")
	}
}
