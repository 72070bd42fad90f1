package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
)

var _ Store = (*Redis)(nil)

// Redis store compartido entre réplicas. Cada sesión es un hash "sess:{id}" con TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig conexión al servidor.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis conecta y verifica con PING.
func NewRedis(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage: redis ping %s: %w", cfg.Addr, err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string { return "sess:" + id }

// Session implementa Store.
func (r *Redis) Session(id string) auth.Storage {
	return &redisView{r: r, key: sessionKey(id)}
}

// Destroy implementa Store.
func (r *Redis) Destroy(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("storage: redis del: %w", err)
	}
	return nil
}

// Close cierra el pool de conexiones.
func (r *Redis) Close() error { return r.client.Close() }

type redisView struct {
	r   *Redis
	key string
}

// Get lee field y renueva el TTL del hash en el mismo pipeline.
func (v *redisView) Get(ctx context.Context, field string) (string, error) {
	var cmd *redis.StringCmd
	_, err := v.r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		cmd = p.HGet(ctx, v.key, field)
		if v.r.ttl > 0 {
			p.Expire(ctx, v.key, v.r.ttl)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("storage: redis hget %s: %w", field, err)
	}
	val, err := cmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", auth.ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("storage: redis hget %s: %w", field, err)
	}
	return val, nil
}

func (v *redisView) Set(ctx context.Context, field, value string) error {
	_, err := v.r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, v.key, field, value)
		if v.r.ttl > 0 {
			p.Expire(ctx, v.key, v.r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: redis hset %s: %w", field, err)
	}
	return nil
}

func (v *redisView) Remove(ctx context.Context, field string) error {
	if err := v.r.client.HDel(ctx, v.key, field).Err(); err != nil {
		return fmt.Errorf("storage: redis hdel %s: %w", field, err)
	}
	return nil
}
