package turn_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/agent-sandbox/internal/clients/llm"
	llmmock "github.com/KirkDiggler/agent-sandbox/internal/clients/llm/mock"
	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/engine"
	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils/builders"
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

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	llm     *llmmock.MockClient
	roller  *fixedRoller
	repos   *testutils.Repositories
	cfg     *turn.Config
	ctx     context.Context
	answers map[string]string
	summary string
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.llm = llmmock.NewMockClient(s.ctrl)
	s.roller = &fixedRoller{face: 1000}
	s.repos = testutils.NewRedisRepositories(s.T())
	s.ctx = context.Background()
	s.answers = map[string]string{}
	s.summary = ""

	e, err := engine.New(&engine.Config{Roller: s.roller})
	s.Require().NoError(err)
	parser, err := decision.NewParser(&decision.ParserConfig{Fallback: decision.FallbackPassthrough})
	s.Require().NoError(err)

	s.cfg = &turn.Config{
		NPCRepo:         s.repos.NPC,
		LocationRepo:    s.repos.Location,
		ItemRepo:        s.repos.Item,
		MemoryRepo:      s.repos.Memory,
		WorldRepo:       s.repos.World,
		GameLogRepo:     s.repos.GameLog,
		LLM:             s.llm,
		Engine:          e,
		Parser:          parser,
		ItemIDGenerator: idgen.NewSequential("item"),
		LogIDGenerator:  idgen.NewSequential("log"),
		BaseLocationID:  testutils.LocationCamp,
		TurnTimeout:     5 * time.Second,
	}

	for _, l := range testutils.CreateTestLocations() {
		_, err := s.repos.Location.Create(s.ctx, location.CreateInput{Location: l})
		s.Require().NoError(err)
	}
	_, err = s.repos.World.Put(s.ctx, world.PutInput{World: &entities.WorldState{Turn: 1, Weather: "Sunny"}})
	s.Require().NoError(err)

	// decisions are gathered concurrently, so answers are keyed by name
	s.llm.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *llm.CompleteInput) (*llm.CompleteOutput, error) {
			if in.Tier == llm.TierDeep {
				return &llm.CompleteOutput{Text: s.summary, Degraded: s.summary == ""}, nil
			}
			for name, text := range s.answers {
				if strings.Contains(in.System, "Character: "+name+" (") {
					return &llm.CompleteOutput{Text: text, Degraded: text == ""}, nil
				}
			}
			return &llm.CompleteOutput{Degraded: true}, nil
		}).
		AnyTimes()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) orchestrator() turn.Service {
	o, err := turn.NewOrchestrator(s.cfg)
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) createNPC(n *entities.NPC) {
	_, err := s.repos.NPC.Create(s.ctx, npc.CreateInput{NPC: n})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) createItem(it *entities.Item) {
	_, err := s.repos.Item.Create(s.ctx, item.CreateInput{Item: it})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) getNPC(id string) *entities.NPC {
	out, err := s.repos.NPC.Get(s.ctx, npc.GetInput{ID: id})
	s.Require().NoError(err)
	return out.NPC
}

func (s *OrchestratorTestSuite) inventory(ownerID string) []*entities.Item {
	out, err := s.repos.Item.ListByOwner(s.ctx, item.ListByOwnerInput{OwnerID: ownerID})
	s.Require().NoError(err)
	return out.Items
}

func (s *OrchestratorTestSuite) world() *entities.WorldState {
	out, err := s.repos.World.Get(s.ctx, world.GetInput{})
	s.Require().NoError(err)
	return out.World
}

func (s *OrchestratorTestSuite) logs() []*entities.GameLog {
	out, err := s.repos.GameLog.ListRecent(s.ctx, gamelog.ListRecentInput{Limit: 50})
	s.Require().NoError(err)
	return out.Logs
}

func (s *OrchestratorTestSuite) actionLogs() []entities.ActionLog {
	var out []entities.ActionLog
	for _, l := range s.logs() {
		if l.Kind != entities.LogKindAction {
			continue
		}
		var a entities.ActionLog
		s.Require().NoError(json.Unmarshal([]byte(l.Content), &a))
		out = append(out, a)
	}
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	s.Run("requires config", func() {
		_, err := turn.NewOrchestrator(nil)
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("requires dependencies", func() {
		_, err := turn.NewOrchestrator(&turn.Config{})
		s.Error(err)
		s.Contains(err.Error(), "NPCRepo")
		s.Contains(err.Error(), "Parser")
	})

	s.Run("rejects negative memory limit", func() {
		cfg := *s.cfg
		cfg.MemoryLimit = -1
		_, err := turn.NewOrchestrator(&cfg)
		s.Error(err)
		s.Contains(err.Error(), "MemoryLimit")
	})
}

func (s *OrchestratorTestSuite) TestGatherAtSafeForest() {
	s.createNPC(builders.NewNPCBuilder().
		WithID("npc_ada").WithName("Ada").
		WithStatus(80, 20, 70).
		AtLocation(testutils.LocationForest).
		Build())
	s.answers["Ada"] = `{"thought":"wood","move_to":"forest","action_type":"GATHER","target":"Self","speech":"Timber!"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Equal(2, out.Turn)
	s.Equal(1, out.NPCsActed)
	s.False(out.GameOver)
	s.Require().Len(out.Outcomes, 1)
	s.Equal(engine.EffectGathered, out.Outcomes[0].Effect)

	ada := s.getNPC("npc_ada")
	s.Equal(30, ada.Status.Hunger)
	s.Equal(80, ada.Status.Health)

	inv := s.inventory("npc_ada")
	s.Require().Len(inv, 1)
	s.Equal("wood", inv[0].Name)
	s.Equal(1, inv[0].Quantity)
	s.Equal(entities.ItemTypeResource, inv[0].Type)

	actions := s.actionLogs()
	s.Require().Len(actions, 1)
	s.Equal("Ada", actions[0].Name)
	s.Equal("Forest", actions[0].Location)
	s.Equal("Timber!", actions[0].Speech)
	s.Equal(string(engine.EffectGathered), actions[0].Effect)
	s.Equal(2, s.world().Turn)
}

func (s *OrchestratorTestSuite) TestGatherStacksOwnedResource() {
	s.createNPC(builders.NewNPCBuilder().
		WithID("npc_ada").WithName("Ada").
		AtLocation(testutils.LocationForest).
		Build())
	s.createItem(&entities.Item{ID: "item_wood", Name: "wood", Quantity: 2, Type: entities.ItemTypeResource, OwnerID: "npc_ada"})
	s.answers["Ada"] = `{"action_type":"gather"}`

	_, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	inv := s.inventory("npc_ada")
	s.Require().Len(inv, 1)
	s.Equal("item_wood", inv[0].ID)
	s.Equal(3, inv[0].Quantity)
}

func (s *OrchestratorTestSuite) TestBuildAtCamp() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	s.createNPC(builders.NewNPCBuilder().WithID("npc_bram").WithName("Bram").Build())
	s.createItem(&entities.Item{ID: "item_a", Name: "wood", Quantity: 1, Type: entities.ItemTypeResource, OwnerID: "npc_ada"})
	s.createItem(&entities.Item{ID: "item_b", Name: "metal", Quantity: 3, Type: entities.ItemTypeResource, OwnerID: "npc_bram"})
	s.answers["Ada"] = `{"action_type":"BUILD"}`
	s.answers["Bram"] = `{"action_type":"BUILD"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Equal(10, out.ConstructionAdded)
	s.Equal(10, s.world().ConstructionProgress)
	s.Empty(s.inventory("npc_ada"), "last unit is removed")

	bram := s.inventory("npc_bram")
	s.Require().Len(bram, 1)
	s.Equal(2, bram[0].Quantity)
}

func (s *OrchestratorTestSuite) TestBuildWithoutMaterialsIsNoop() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	s.answers["Ada"] = `{"action_type":"BUILD"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Equal(0, out.ConstructionAdded)
	s.Equal(0, s.world().ConstructionProgress)
	s.Equal(engine.EffectBuildNoop, out.Outcomes[0].Effect)
	s.Equal(2, out.Turn)
}

func (s *OrchestratorTestSuite) TestMovement() {
	s.Run("known destination moves the npc", func() {
		s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
		s.answers["Ada"] = `{"move_to":"forest","action_type":"REST"}`

		out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
		s.Require().NoError(err)

		s.Equal(testutils.LocationForest, s.getNPC("npc_ada").LocationID)
		s.Require().Len(out.Outcomes, 1)
		s.Equal("Forest", out.Outcomes[0].LocationName)
		s.True(strings.HasPrefix(out.Outcomes[0].Description, "left Camp, heading to Forest. "))
	})

	s.Run("unknown destination keeps the npc in place", func() {
		s.createNPC(builders.NewNPCBuilder().WithID("npc_bram").WithName("Bram").Build())
		s.answers["Bram"] = `{"move_to":"moon","action_type":"REST"}`

		_, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
		s.Require().NoError(err)

		s.Equal(testutils.LocationCamp, s.getNPC("npc_bram").LocationID)
	})
}

func (s *OrchestratorTestSuite) TestGatherUsesStartingLocation() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	s.answers["Ada"] = `{"move_to":"forest","action_type":"GATHER"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Equal(engine.EffectGatherFailed, out.Outcomes[0].Effect)
	s.Empty(s.inventory("npc_ada"))
	ada := s.getNPC("npc_ada")
	s.Equal(testutils.LocationForest, ada.LocationID)
	s.Equal(95, ada.Status.Health)
}

func (s *OrchestratorTestSuite) TestMalformedOutputFallsBack() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").WithStatus(50, 20, 50).Build())
	s.answers["Ada"] = "I think I will take a nap"

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Require().Len(out.Outcomes, 1)
	d := out.Outcomes[0].Decision
	s.True(d.Fallback)
	s.Equal(decision.ActionRest, d.Action)
	s.Equal("I think I will take a nap", d.Thought)

	ada := s.getNPC("npc_ada")
	s.Equal(55, ada.Status.Health)
	s.Equal(25, ada.Status.Hunger)
	s.Equal(2, out.Turn)
}

func (s *OrchestratorTestSuite) TestDegradedModelUsesDefaults() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Require().Len(out.Outcomes, 1)
	s.True(out.Outcomes[0].Degraded)
	s.Equal(decision.ActionRest, out.Outcomes[0].Decision.Action)
	s.Equal(decision.DefaultSpeech, out.Outcomes[0].Decision.Speech)
}

func (s *OrchestratorTestSuite) TestDeathOnFailedGather() {
	s.roller.face = 1
	s.createNPC(builders.NewNPCBuilder().
		WithID("npc_ada").WithName("Ada").
		WithStatus(5, 10, 50).
		AtLocation(testutils.LocationRuins).
		Build())
	s.answers["Ada"] = `{"action_type":"GATHER"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.True(out.Outcomes[0].Died)
	ada := s.getNPC("npc_ada")
	s.False(ada.Alive)
	s.Equal(0, ada.Status.Health)

	var deaths int
	for _, l := range s.logs() {
		if l.Kind == entities.LogKindDeath {
			deaths++
			s.Contains(l.Content, "Ada")
		}
	}
	s.Equal(1, deaths)

	s.Run("next turn ends the game", func() {
		out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
		s.Require().NoError(err)
		s.True(out.GameOver)
		s.Equal(2, out.Turn)
		s.Equal(2, s.world().Turn)
	})
}

func (s *OrchestratorTestSuite) TestDeadNPCsAreSkipped() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	s.createNPC(builders.NewNPCBuilder().WithID("npc_bram").WithName("Bram").Dead().Build())
	s.answers["Ada"] = `{"action_type":"REST"}`
	s.answers["Bram"] = `{"action_type":"GATHER"}`

	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.Equal(1, out.NPCsActed)
	s.Equal("Ada", out.Outcomes[0].NPC.Name)
	bram := s.getNPC("npc_bram")
	s.Equal(0, bram.Status.Hunger, "dead npcs are left untouched")
}

func (s *OrchestratorTestSuite) TestNoNPCsIsGameOver() {
	out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)

	s.True(out.GameOver)
	s.Equal(1, out.Turn)
	s.Equal(0, out.NPCsActed)
	s.Equal(1, s.world().Turn)
	s.Empty(s.logs())
}

func (s *OrchestratorTestSuite) TestLockHeld() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	_, err := s.repos.World.AcquireTurnLock(s.ctx, world.AcquireTurnLockInput{Token: "other", TTL: time.Minute})
	s.Require().NoError(err)

	_, err = s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Error(err)
	s.True(errors.IsAborted(err))
	s.Equal(1, s.world().Turn)
	s.Equal(0, s.getNPC("npc_ada").Status.Hunger)
}

func (s *OrchestratorTestSuite) TestLockReleasedAfterTurn() {
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())
	o := s.orchestrator()

	_, err := o.AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)
	out, err := o.AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Require().NoError(err)
	s.Equal(3, out.Turn)
}

func (s *OrchestratorTestSuite) TestWorldNotSeeded() {
	s.repos.Server.Del("world_state")

	_, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
	s.Error(err)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestNarrativeSummary() {
	s.cfg.NarrativeSummary = true
	s.createNPC(builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build())

	s.Run("stored when the narrator answers", func() {
		s.summary = "  The camp slept.  "
		out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
		s.Require().NoError(err)
		s.Equal("The camp slept.", out.Summary)

		logs := s.logs()
		s.Require().NotEmpty(logs)
		s.Equal(entities.LogKindTurnSummary, logs[0].Kind)
		s.Equal("The camp slept.", logs[0].Content)
	})

	s.Run("skipped when the narrator is silent", func() {
		s.summary = ""
		out, err := s.orchestrator().AdvanceTurn(s.ctx, &turn.AdvanceTurnInput{})
		s.Require().NoError(err)
		s.Empty(out.Summary)
		s.Equal(entities.LogKindAction, s.logs()[0].Kind)
	})
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
