package npc

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
)

const (
	npcKeyPrefix = "npc:"
	npcIndexKey  = "npcs"

	// Error messages
	errNPCNil     = "npc cannot be nil"
	errNPCIDEmpty = "npc ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis NPC repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed NPC repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateNPC(input.NPC); err != nil {
		return nil, err
	}

	key := npcKeyPrefix + input.NPC.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check npc existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("npc with ID %s already exists", input.NPC.ID)
	}

	data, err := json.Marshal(input.NPC)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal npc")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, npcIndexKey, input.NPC.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create npc")
	}

	return &CreateOutput{NPC: input.NPC}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errNPCIDEmpty)
	}

	result, err := r.client.Get(ctx, npcKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("npc with ID %s not found", input.ID).WithMeta("npc_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get npc")
	}

	var npc entities.NPC
	if err := json.Unmarshal([]byte(result), &npc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal npc")
	}

	return &GetOutput{NPC: &npc}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, npcIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list npc IDs")
	}

	npcs := make([]*entities.NPC, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "npc missing from store, cleaning up index", "npc_id", id)
				r.client.SRem(ctx, npcIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get npc %s", id)
		}
		if input.AliveOnly && !out.NPC.Alive {
			continue
		}
		npcs = append(npcs, out.NPC)
	}

	sort.Slice(npcs, func(i, j int) bool {
		if npcs[i].Name == npcs[j].Name {
			return npcs[i].ID < npcs[j].ID
		}
		return npcs[i].Name < npcs[j].Name
	})

	return &ListOutput{NPCs: npcs}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateNPC(input.NPC); err != nil {
		return nil, err
	}

	key := npcKeyPrefix + input.NPC.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check npc existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("npc with ID %s not found", input.NPC.ID).WithMeta("npc_id", input.NPC.ID)
	}

	data, err := json.Marshal(input.NPC)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal npc")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update npc")
	}

	return &UpdateOutput{NPC: input.NPC}, nil
}

func validateNPC(npc *entities.NPC) error {
	if npc == nil {
		return errors.InvalidArgument(errNPCNil)
	}
	if npc.ID == "" {
		return errors.InvalidArgument(errNPCIDEmpty)
	}
	return nil
}
