package memory

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
)

const (
	memoryKeyPrefix      = "memory:"
	npcMemoryIndexPrefix = "memories:npc:"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis memory repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
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

// NewRedis creates a new Redis-backed memory repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  clk,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	m := input.Memory
	if m == nil {
		return nil, errors.InvalidArgument("memory cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", m.ID, vb)
	errors.ValidateRequired("npc_name", m.NPCName, vb)
	errors.ValidateRequired("memory_text", m.Text, vb)
	errors.ValidateRange("importance", m.Importance, entities.MinImportance, entities.MaxImportance, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.clock.Now()
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal memory")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, memoryKeyPrefix+m.ID, data, 0)
	pipe.ZAdd(ctx, npcMemoryIndexPrefix+m.NPCName, redis.Z{
		Score:  float64(m.Importance),
		Member: m.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create memory")
	}

	slog.DebugContext(ctx, "memory created",
		"memory_id", m.ID,
		"npc_name", m.NPCName,
		"importance", m.Importance)

	return &CreateOutput{Memory: m}, nil
}

func (r *redisRepository) ListTop(ctx context.Context, input ListTopInput) (*ListTopOutput, error) {
	if input.NPCName == "" {
		return nil, errors.InvalidArgument("npc name cannot be empty")
	}
	if input.Limit <= 0 {
		return &ListTopOutput{Memories: []*entities.Memory{}}, nil
	}

	// ZREVRANGE breaks score ties by member descending, and IDs are time-ordered
	ids, err := r.client.ZRevRange(ctx, npcMemoryIndexPrefix+input.NPCName, 0, int64(input.Limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list memory IDs")
	}
	if len(ids) == 0 {
		return &ListTopOutput{Memories: []*entities.Memory{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = memoryKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get memories")
	}

	memories := make([]*entities.Memory, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "memory in index but not found",
				"memory_id", ids[i],
				"npc_name", input.NPCName)
			continue
		}
		var m entities.Memory
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal memory %s", ids[i])
		}
		memories = append(memories, &m)
	}

	return &ListTopOutput{Memories: memories}, nil
}
