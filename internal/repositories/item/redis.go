package item

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
	itemKeyPrefix     = "item:"
	itemIndexKey      = "items"
	ownerIndexPrefix  = "items:owner:"
	communalIndexKey  = "items:communal"
	errItemNil        = "item cannot be nil"
	errItemIDEmpty    = "item ID cannot be empty"
	errItemNotFoundFm = "item with ID %s not found"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis item repository
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

// NewRedis creates a new Redis-backed item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func ownerIndexKey(ownerID string) string {
	if ownerID == "" {
		return communalIndexKey
	}
	return ownerIndexPrefix + ownerID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	key := itemKeyPrefix + input.Item.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check item existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("item with ID %s already exists", input.Item.ID)
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, itemIndexKey, input.Item.ID)
	pipe.SAdd(ctx, ownerIndexKey(input.Item.OwnerID), input.Item.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create item")
	}

	slog.DebugContext(ctx, "item created",
		"item_id", input.Item.ID,
		"name", input.Item.Name,
		"owner_id", input.Item.OwnerID)

	return &CreateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	result, err := r.client.Get(ctx, itemKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errItemNotFoundFm, input.ID).WithMeta("item_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	var it entities.Item
	if err := json.Unmarshal([]byte(result), &it); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item")
	}

	return &GetOutput{Item: &it}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	items, err := r.listByIndex(ctx, ownerIndexKey(input.OwnerID))
	if err != nil {
		return nil, err
	}
	return &ListByOwnerOutput{Items: items}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	items, err := r.listByIndex(ctx, itemIndexKey)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Items: items}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Item.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, itemKeyPrefix+input.Item.ID, data, 0)
	if existing.Item.OwnerID != input.Item.OwnerID {
		pipe.SRem(ctx, ownerIndexKey(existing.Item.OwnerID), input.Item.ID)
		pipe.SAdd(ctx, ownerIndexKey(input.Item.OwnerID), input.Item.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update item")
	}

	return &UpdateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	existing, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, itemKeyPrefix+input.ID)
	pipe.SRem(ctx, itemIndexKey, input.ID)
	pipe.SRem(ctx, ownerIndexKey(existing.Item.OwnerID), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete item")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Item, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item IDs from index")
	}
	sort.Strings(ids)

	slog.DebugContext(ctx, "listing items by index",
		"index_key", indexKey,
		"count", len(ids))

	items := make([]*entities.Item, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "item in index but not found, cleaning up",
					"item_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get item %s", id)
		}
		items = append(items, out.Item)
	}

	return items, nil
}

func validateItem(it *entities.Item) error {
	if it == nil {
		return errors.InvalidArgument(errItemNil)
	}
	if it.ID == "" {
		return errors.InvalidArgument(errItemIDEmpty)
	}
	if it.Quantity < 0 {
		return errors.InvalidArgumentf("item %s quantity cannot be negative", it.ID)
	}
	return nil
}
