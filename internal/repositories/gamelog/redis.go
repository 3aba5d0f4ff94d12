package gamelog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
	"github.com/KirkDiggler/agent-sandbox/internal/errors"
	"github.com/KirkDiggler/agent-sandbox/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/agent-sandbox/internal/redis"
)

const gameLogKey = "game_logs"

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	maxEntries int64
}

// RedisConfig contains configuration for the Redis game log repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// MaxEntries trims the list after each append; zero keeps everything
	MaxEntries int
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.MaxEntries < 0 {
		return errors.InvalidArgument("max entries cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed game log repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      clk,
		maxEntries: int64(cfg.MaxEntries),
	}, nil
}

func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := validateLog(input.Log); err != nil {
		return nil, err
	}
	if input.Log.CreatedAt.IsZero() {
		input.Log.CreatedAt = r.clock.Now()
	}

	data, err := json.Marshal(input.Log)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game log")
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, gameLogKey, data)
	if r.maxEntries > 0 {
		pipe.LTrim(ctx, gameLogKey, 0, r.maxEntries-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to append game log")
	}

	slog.DebugContext(ctx, "game log appended",
		"log_id", input.Log.ID,
		"kind", input.Log.Kind)

	return &AppendOutput{Log: input.Log}, nil
}

func (r *redisRepository) ListRecent(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error) {
	if input.Limit <= 0 {
		return &ListRecentOutput{Logs: []*entities.GameLog{}}, nil
	}

	raw, err := r.client.LRange(ctx, gameLogKey, 0, int64(input.Limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list game logs")
	}

	logs := make([]*entities.GameLog, 0, len(raw))
	for _, entry := range raw {
		var l entities.GameLog
		if err := json.Unmarshal([]byte(entry), &l); err != nil {
			slog.WarnContext(ctx, "skipping corrupt game log entry", "error", err)
			continue
		}
		logs = append(logs, &l)
	}

	return &ListRecentOutput{Logs: logs}, nil
}
