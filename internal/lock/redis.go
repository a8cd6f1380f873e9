package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "swim:lock:"
	retryInterval = 50 * time.Millisecond
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config настройки Redis-блокировок
type Config struct {
	RedisClient *redis.Client
	Wait        time.Duration
	Logger      *zap.Logger
}

// Redis распределённая блокировка на SET NX PX
type Redis struct {
	client *redis.Client
	wait   time.Duration
	logger *zap.Logger
}

func NewRedis(cfg *Config) (*Redis, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	wait := cfg.Wait
	if wait <= 0 {
		wait = DefaultWait
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Redis{
		client: cfg.RedisClient,
		wait:   wait,
		logger: logger,
	}, nil
}

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(r.wait)

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		// Отпускаем даже если контекст запроса уже отменён
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, r.client, []string{fullKey}, token).Err(); err != nil {
			r.logger.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
