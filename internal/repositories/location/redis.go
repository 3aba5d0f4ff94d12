package location

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
	locationKeyPrefix = "location:"
	locationIndexKey  = "locations"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis location repository
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

// NewRedis creates a new Redis-backed location repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Location == nil {
		return nil, errors.InvalidArgument("location cannot be nil")
	}
	if input.Location.ID == "" {
		return nil, errors.InvalidArgument("location ID cannot be empty")
	}

	data, err := json.Marshal(input.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal location")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, locationKeyPrefix+input.Location.ID, data, 0)
	pipe.SAdd(ctx, locationIndexKey, input.Location.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create location")
	}

	return &CreateOutput{Location: input.Location}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("location ID cannot be empty")
	}

	result, err := r.client.Get(ctx, locationKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("location with ID %s not found", input.ID).WithMeta("location_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get location")
	}

	var loc entities.Location
	if err := json.Unmarshal([]byte(result), &loc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal location")
	}

	return &GetOutput{Location: &loc}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, locationIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list location IDs")
	}
	sort.Strings(ids)

	locations := make([]*entities.Location, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "location missing from store, skipping", "location_id", id)
				continue
			}
			return nil, err
		}
		locations = append(locations, out.Location)
	}

	return &ListOutput{Locations: locations}, nil
}
