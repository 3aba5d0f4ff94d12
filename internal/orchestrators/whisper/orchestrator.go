// Package whisper lets an outside voice plant a memory in an NPC's mind.
package whisper

//go:generate mockgen -destination=mock/mock_service.go -package=whispermock github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
)

// OracleImportance is the weight of a whispered memory; it always ranks
// with the most important ones.
const OracleImportance = entities.MaxImportance

// FormatOracleMemory renders the stored text of a whisper
func FormatOracleMemory(message string) string {
	return fmt.Sprintf("[Oracle] A commanding voice echoes in your mind: \"%s\"", message)
}

// WhisperInput is the input for whispering to an NPC
type WhisperInput struct {
	NPCID   string
	Message string
}

// WhisperOutput is the output of a whisper
type WhisperOutput struct {
	Memory *entities.Memory
}

// Service defines the interface for whisper operations
type Service interface {
	// Whisper stores the message as a top-importance memory of the NPC.
	// Returns errors.InvalidArgument if either field is empty and
	// errors.NotFound if the NPC does not exist.
	Whisper(ctx context.Context, input *WhisperInput) (*WhisperOutput, error)
}

// Config holds the dependencies for the whisper orchestrator
type Config struct {
	NPCRepo    npc.Repository
	MemoryRepo memory.Repository
	// IDGenerator should be time ordered so ties list newest first
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.NPCRepo == nil {
		vb.RequiredField("NPCRepo")
	}
	if c.MemoryRepo == nil {
		vb.RequiredField("MemoryRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	npcRepo    npc.Repository
	memoryRepo memory.Repository
	idGen      idgen.Generator
}

// NewOrchestrator creates a new whisper orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		npcRepo:    cfg.NPCRepo,
		memoryRepo: cfg.MemoryRepo,
		idGen:      cfg.IDGenerator,
	}, nil
}

// Whisper implements Service
func (o *orchestrator) Whisper(ctx context.Context, input *WhisperInput) (*WhisperOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("npc_id", input.NPCID, vb)
	errors.ValidateRequired("message", input.Message, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	npcOut, err := o.npcRepo.Get(ctx, npc.GetInput{ID: input.NPCID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to get npc %s", input.NPCID)
	}

	created, err := o.memoryRepo.Create(ctx, memory.CreateInput{Memory: &entities.Memory{
		ID:         o.idGen.Generate(),
		NPCName:    npcOut.NPC.Name,
		Text:       FormatOracleMemory(strings.TrimSpace(input.Message)),
		Importance: OracleImportance,
	}})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store whisper for %s", npcOut.NPC.Name)
	}

	slog.InfoContext(ctx, "whisper delivered", "npc", npcOut.NPC.Name, "memory_id", created.Memory.ID)

	return &WhisperOutput{Memory: created.Memory}, nil
}
