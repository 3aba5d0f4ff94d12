package world

import (
	"context"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
)

const (
	worldKey    = "world_state"
	turnLockKey = "world_state:turn_lock"

	fieldTurn         = "turn"
	fieldWeather      = "weather"
	fieldConstruction = "construction_progress"
)

// releaseScript deletes the lock only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis world repository
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

// NewRedis creates a new Redis-backed world repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, _ GetInput) (*GetOutput, error) {
	fields, err := r.client.HGetAll(ctx, worldKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get world state")
	}
	if len(fields) == 0 {
		return nil, errors.NotFound("world state not found")
	}

	turn, err := parseIntField(fields, fieldTurn)
	if err != nil {
		return nil, err
	}
	construction, err := parseIntField(fields, fieldConstruction)
	if err != nil {
		return nil, err
	}

	return &GetOutput{World: &entities.WorldState{
		Turn:                 turn,
		Weather:              fields[fieldWeather],
		ConstructionProgress: construction,
	}}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.World == nil {
		return nil, errors.InvalidArgument("world cannot be nil")
	}

	err := r.client.HSet(ctx, worldKey,
		fieldTurn, input.World.Turn,
		fieldWeather, input.World.Weather,
		fieldConstruction, input.World.ConstructionProgress,
	).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to put world state")
	}

	return &PutOutput{World: input.World}, nil
}

func (r *redisRepository) IncrementTurn(ctx context.Context, _ IncrementTurnInput) (*IncrementTurnOutput, error) {
	turn, err := r.client.HIncrBy(ctx, worldKey, fieldTurn, 1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to increment turn")
	}
	return &IncrementTurnOutput{Turn: int(turn)}, nil
}

func (r *redisRepository) AddConstruction(ctx context.Context, input AddConstructionInput) (*AddConstructionOutput, error) {
	progress, err := r.client.HIncrBy(ctx, worldKey, fieldConstruction, int64(input.Amount)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add construction progress")
	}
	return &AddConstructionOutput{ConstructionProgress: int(progress)}, nil
}

func (r *redisRepository) AcquireTurnLock(ctx context.Context, input AcquireTurnLockInput) (*AcquireTurnLockOutput, error) {
	if input.Token == "" {
		return nil, errors.InvalidArgument("lock token cannot be empty")
	}
	if input.TTL <= 0 {
		return nil, errors.InvalidArgument("lock ttl must be positive")
	}

	ok, err := r.client.SetNX(ctx, turnLockKey, input.Token, input.TTL).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire turn lock")
	}
	if !ok {
		return nil, errors.Aborted("a turn is already being advanced")
	}

	return &AcquireTurnLockOutput{}, nil
}

func (r *redisRepository) ReleaseTurnLock(ctx context.Context, input ReleaseTurnLockInput) (*ReleaseTurnLockOutput, error) {
	n, err := releaseScript.Run(ctx, r.client, []string{turnLockKey}, input.Token).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to release turn lock")
	}
	return &ReleaseTurnLockOutput{Released: n == 1}, nil
}

func parseIntField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "world field %s is not an integer", name)
	}
	return v, nil
}
