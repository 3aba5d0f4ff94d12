package whisper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	memorymock "github.com/KirkDiggler/agent-sandbox/internal/repositories/memory/mock"
	npcmock "github.com/KirkDiggler/agent-sandbox/internal/repositories/npc/mock"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils/builders"
	"github.com/KirkDiggler/agent-sandbox/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockNPCRepo  *npcmock.MockRepository
	mockMemories *memorymock.MockRepository
	orchestrator whisper.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockNPCRepo = npcmock.NewMockRepository(s.ctrl)
	s.mockMemories = memorymock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	o, err := whisper.NewOrchestrator(&whisper.Config{
		NPCRepo:     s.mockNPCRepo,
		MemoryRepo:  s.mockMemories,
		IDGenerator: idgen.NewSequential("mem"),
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := whisper.NewOrchestrator(&whisper.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "IDGenerator")
}

func (s *OrchestratorTestSuite) TestWhisper() {
	ada := builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build()
	mocks.ExpectNPCGet(s.ctx, s.mockNPCRepo, "npc_ada", ada, nil)

	s.mockMemories.EXPECT().
		Create(s.ctx, memory.CreateInput{Memory: &entities.Memory{
			ID:         "mem_000001",
			NPCName:    "Ada",
			Text:       `[Oracle] A commanding voice echoes in your mind: "Go to the lake"`,
			Importance: 10,
		}}).
		DoAndReturn(func(_ context.Context, in memory.CreateInput) (*memory.CreateOutput, error) {
			return &memory.CreateOutput{Memory: in.Memory}, nil
		})

	out, err := s.orchestrator.Whisper(s.ctx, &whisper.WhisperInput{NPCID: "npc_ada", Message: " Go to the lake "})
	s.Require().NoError(err)
	s.Equal("Ada", out.Memory.NPCName)
	s.Equal(whisper.OracleImportance, out.Memory.Importance)
}

func (s *OrchestratorTestSuite) TestWhisperValidation() {
	testCases := []struct {
		name  string
		input *whisper.WhisperInput
		field string
	}{
		{name: "nil input", input: nil},
		{name: "missing npc", input: &whisper.WhisperInput{Message: "hi"}, field: "npc_id"},
		{name: "missing message", input: &whisper.WhisperInput{NPCID: "npc_ada"}, field: "message"},
		{name: "blank message", input: &whisper.WhisperInput{NPCID: "npc_ada", Message: "   "}, field: "message"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// no repository calls are expected
			_, err := s.orchestrator.Whisper(s.ctx, tc.input)
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
			if tc.field != "" {
				s.Contains(err.Error(), tc.field)
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestWhisperUnknownNPC() {
	mocks.ExpectNPCGet(s.ctx, s.mockNPCRepo, "npc_ghost", nil, errors.NotFound("npc not found"))

	_, err := s.orchestrator.Whisper(s.ctx, &whisper.WhisperInput{NPCID: "npc_ghost", Message: "boo"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestWhisperStoreFailure() {
	ada := builders.NewNPCBuilder().WithID("npc_ada").WithName("Ada").Build()
	mocks.ExpectNPCGet(s.ctx, s.mockNPCRepo, "npc_ada", ada, nil)
	s.mockMemories.EXPECT().
		Create(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.orchestrator.Whisper(s.ctx, &whisper.WhisperInput{NPCID: "npc_ada", Message: "hello"})
	s.Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
