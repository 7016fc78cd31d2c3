package external

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"budgetcache.app/internal/config"
	"budgetcache.app/internal/ports"
	"budgetcache.app/pkg/errors"
)

// RedisDeadLetterLog implements the DeadLetterLog port on a capped Redis list
type RedisDeadLetterLog struct {
	client   *redis.Client
	key      string
	capacity int
	clock    func() time.Time
}

var _ ports.DeadLetterLog = (*RedisDeadLetterLog)(nil)

// NewRedisDeadLetterLog connects to Redis and returns a dead-letter log stored under key
func NewRedisDeadLetterLog(cfg *config.RedisConfig, key string, capacity int) (*RedisDeadLetterLog, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}
	if key == "" {
		return nil, errors.NewConfigurationError("dead letter key cannot be empty", nil)
	}
	if capacity <= 0 {
		capacity = DefaultDeadLetterCapacity
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return &RedisDeadLetterLog{
		client:   client,
		key:      key,
		capacity: capacity,
		clock:    time.Now,
	}, nil
}

// Record pushes letter to the head of the list and trims the tail past capacity
func (r *RedisDeadLetterLog) Record(ctx context.Context, letter ports.DeadLetter) error {
	if letter.Task == "" {
		return errors.NewValidationError("dead letter task cannot be empty")
	}

	payload, err := json.Marshal(stamp(letter, r.clock))
	if err != nil {
		return errors.NewCacheError("failed to encode dead letter", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, payload)
		pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))
		return nil
	})
	if err != nil {
		return errors.NewExternalAPIError("redis dead letter push failed", err)
	}
	return nil
}

// Recent returns up to limit letters, newest first. A non-positive limit returns all of them.
func (r *RedisDeadLetterLog) Recent(ctx context.Context, limit int) ([]ports.DeadLetter, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	raw, err := r.client.LRange(ctx, r.key, 0, stop).Result()
	if err != nil {
		return nil, errors.NewExternalAPIError("redis dead letter read failed", err)
	}

	letters := make([]ports.DeadLetter, 0, len(raw))
	for _, item := range raw {
		var letter ports.DeadLetter
		if err := json.Unmarshal([]byte(item), &letter); err != nil {
			return nil, errors.NewCacheError("failed to decode dead letter", err)
		}
		letters = append(letters, letter)
	}
	return letters, nil
}

// Ping checks if the Redis connection is alive
func (r *RedisDeadLetterLog) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("Redis ping failed", err)
	}
	return nil
}

// Close closes the Redis client connection
func (r *RedisDeadLetterLog) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewExternalAPIError("failed to close Redis connection", err)
	}
	return nil
}
