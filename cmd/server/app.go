package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/agent-sandbox/internal/clients/llm"
	"github.com/KirkDiggler/agent-sandbox/internal/config"
	"github.com/KirkDiggler/agent-sandbox/internal/decision"
	"github.com/KirkDiggler/agent-sandbox/internal/engine"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/state"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/turn"
	"github.com/KirkDiggler/agent-sandbox/internal/orchestrators/whisper"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/gamelog"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/item"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/location"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/memory"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/npc"
	"github.com/KirkDiggler/agent-sandbox/internal/repositories/world"
)

// repositories is every store the server uses
type repositories struct {
	npc      npc.Repository
	location location.Repository
	item     item.Repository
	memory   memory.Repository
	world    world.Repository
	gameLog  gamelog.Repository
	close    func()
}

func connectRedis(ctx context.Context, cfg *config.Config) (redisclient.Client, error) {
	client, err := redisclient.Connect(ctx, cfg.RedisAddr, &redisclient.Options{
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to redis")
	}
	return client, nil
}

func newRepositories(cfg *config.Config, client redisclient.Client) (*repositories, error) {
	r := &repositories{close: func() {}}
	var err error

	if r.npc, err = npc.NewRedis(&npc.RedisConfig{Client: client}); err != nil {
		return nil, errors.Wrap(err, "failed to create npc repository")
	}
	if r.location, err = location.NewRedis(&location.RedisConfig{Client: client}); err != nil {
		return nil, errors.Wrap(err, "failed to create location repository")
	}
	if r.item, err = item.NewRedis(&item.RedisConfig{Client: client}); err != nil {
		return nil, errors.Wrap(err, "failed to create item repository")
	}
	if r.memory, err = memory.NewRedis(&memory.RedisConfig{Client: client}); err != nil {
		return nil, errors.Wrap(err, "failed to create memory repository")
	}
	if r.world, err = world.NewRedis(&world.RedisConfig{Client: client}); err != nil {
		return nil, errors.Wrap(err, "failed to create world repository")
	}

	switch cfg.LogBackend {
	case config.LogBackendSQLite:
		archive, err := gamelog.OpenSQLite(&gamelog.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open game log archive")
		}
		r.gameLog = archive
		r.close = func() {
			if err := archive.Close(); err != nil {
				slog.Error("failed to close game log archive", "error", err)
			}
		}
	default:
		r.gameLog, err = gamelog.NewRedis(&gamelog.RedisConfig{Client: client, MaxEntries: cfg.LogMaxEntries})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create game log repository")
		}
	}

	return r, nil
}

func newLLMClient(cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(&llm.Config{
		Fast: llm.TierConfig{
			Endpoint:    cfg.LLM.FastEndpoint,
			Model:       cfg.LLM.FastModel,
			MaxTokens:   cfg.LLM.FastMaxTokens,
			Temperature: cfg.LLM.Temperature,
			JSONMode:    true,
			Keys:        llm.NewKeyRing(cfg.LLM.GroqKeys, cfg.LLM.KeyOffset),
		},
		Deep: llm.TierConfig{
			Endpoint:    cfg.LLM.DeepEndpoint,
			Model:       cfg.LLM.DeepModel,
			MaxTokens:   cfg.LLM.DeepMaxTokens,
			Temperature: cfg.LLM.Temperature,
			Keys:        llm.NewKeyRing(cfg.LLM.SiliconKeys, cfg.LLM.KeyOffset),
		},
		HTTPClient: &http.Client{Timeout: cfg.LLM.RequestTimeout},
	})
}

// services is what the transports serve
type services struct {
	turn    turn.Service
	whisper whisper.Service
	state   state.Service
}

func newServices(cfg *config.Config, repos *repositories, gateway llm.Client) (*services, error) {
	eng, err := engine.New(&engine.Config{Roller: dice.DefaultRoller, BaseLocationID: cfg.BaseLocation})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	parser, err := decision.NewParser(&decision.ParserConfig{Fallback: decision.FallbackPolicy(cfg.DecisionFallback)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decision parser")
	}

	turnService, err := turn.NewOrchestrator(&turn.Config{
		NPCRepo:          repos.npc,
		LocationRepo:     repos.location,
		ItemRepo:         repos.item,
		MemoryRepo:       repos.memory,
		WorldRepo:        repos.world,
		GameLogRepo:      repos.gameLog,
		LLM:              gateway,
		Engine:           eng,
		Parser:           parser,
		ItemIDGenerator:  idgen.NewUUID("item"),
		LogIDGenerator:   idgen.NewTimeOrdered("log"),
		BaseLocationID:   cfg.BaseLocation,
		MemoryLimit:      cfg.MemoryLimit,
		TurnTimeout:      cfg.TurnTimeout,
		NarrativeSummary: cfg.NarrativeSummary,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create turn orchestrator")
	}

	whisperService, err := whisper.NewOrchestrator(&whisper.Config{
		NPCRepo:     repos.npc,
		MemoryRepo:  repos.memory,
		IDGenerator: idgen.NewTimeOrdered("mem"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create whisper orchestrator")
	}

	stateService, err := state.NewOrchestrator(&state.Config{
		NPCRepo:      repos.npc,
		LocationRepo: repos.location,
		ItemRepo:     repos.item,
		WorldRepo:    repos.world,
		GameLogRepo:  repos.gameLog,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state orchestrator")
	}

	return &services{turn: turnService, whisper: whisperService, state: stateService}, nil
}
