package alertstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// RedisConfig configures the Redis store.
type RedisConfig struct {
	KeyPrefix  string        `env:"ALERTS_REDIS_PREFIX" envDefault:"alerts:"`
	TTL        time.Duration `env:"ALERTS_REDIS_TTL" envDefault:"24h"` // 0 keeps keys forever
	MaxRetries int           `env:"ALERTS_REDIS_MAX_RETRIES" envDefault:"5"`
}

// Redis stores one JSON list per scope. Append runs inside WATCH/MULTI so
// concurrent writers never lose alerts.
type Redis struct {
	client redis.UniversalClient
	cfg    RedisConfig
	logger *slog.Logger
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithRedisLogger sets the logger for the Redis store.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(r *Redis) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRedis creates a Redis backed store.
func NewRedis(client redis.UniversalClient, cfg RedisConfig, opts ...RedisOption) *Redis {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "alerts:"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	r := &Redis{
		client: client,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(scope string) string {
	return r.cfg.KeyPrefix + scope
}

func (r *Redis) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	data, err := r.client.Get(ctx, r.key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []alerts.Alert{}, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return alerts.Unmarshal(data)
}

func (r *Redis) Append(ctx context.Context, scope string, a alerts.Alert) error {
	key := r.key(scope)
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		list, err := alerts.Unmarshal(data)
		if err != nil {
			return err
		}
		list, added := alerts.AppendUnique(list, a)
		if !added {
			return nil
		}
		payload, err := alerts.Marshal(list)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.cfg.TTL)
			return nil
		})
		return err
	}

	for range r.cfg.MaxRetries {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "Alert append lost a race, retrying",
				logger.Backend("redis"),
				logger.Scope(scope),
			)
			continue
		}
		if errors.Is(err, alerts.ErrInvalidPayload) {
			return err
		}
		return unavailable(err)
	}
	return ErrConflict
}

func (r *Redis) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return r.Clear(ctx, scope)
	}
	payload, err := alerts.Marshal(alerts.Dedupe(list))
	if err != nil {
		return err
	}
	return unavailable(r.client.Set(ctx, r.key(scope), payload, r.cfg.TTL).Err())
}

func (r *Redis) Clear(ctx context.Context, scope string) error {
	return unavailable(r.client.Del(ctx, r.key(scope)).Err())
}
