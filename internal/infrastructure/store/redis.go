package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultOpTimeout      = 3 * time.Second
	defaultPrefix         = "gateway:"
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis is a session store persisted in Redis, so the operator's session
// survives gateway restarts. Every operation runs under its own short
// timeout; a Redis fault is logged and reported as an absent value, matching
// the session-store contract.
type Redis struct {
	client    *redis.Client
	prefix    string
	opTimeout time.Duration
	log       zerolog.Logger
}

// NewRedis wraps an established Redis client as a session store.
func NewRedis(client *redis.Client, log zerolog.Logger) *Redis {
	return &Redis{
		client:    client,
		prefix:    defaultPrefix,
		opTimeout: defaultOpTimeout,
		log:       log,
	}
}

func (r *Redis) Token() (string, bool) {
	return r.get(keyToken)
}

func (r *Redis) SetToken(token string) {
	r.set(keyToken, token)
}

func (r *Redis) ClearToken() {
	r.del(keyToken)
}

func (r *Redis) User() (*domain.User, bool) {
	raw, ok := r.get(keyUser)
	if !ok {
		return nil, false
	}
	user, err := decodeUser(raw)
	if err != nil {
		// Self-heal: drop the bad entry so the next read is a clean miss.
		r.log.Warn().Err(err).Msg("corrupted stored user, removing entry")
		r.del(keyUser)
		return nil, false
	}
	return user, true
}

func (r *Redis) SetUser(user *domain.User) {
	raw, err := encodeUser(user)
	if err != nil {
		r.log.Warn().Err(err).Msg("cannot serialize user, skipping persist")
		return
	}
	r.set(keyUser, raw)
}

func (r *Redis) ClearUser() {
	r.del(keyUser)
}

func (r *Redis) RememberMe() bool {
	raw, ok := r.get(keyRememberMe)
	return ok && raw == "true"
}

func (r *Redis) SetRememberMe(remember bool) {
	if remember {
		r.set(keyRememberMe, "true")
		return
	}
	r.del(keyRememberMe)
}

func (r *Redis) LastRoute() (string, bool) {
	return r.get(keyLastRoute)
}

func (r *Redis) SetLastRoute(route string) {
	r.set(keyLastRoute, route)
}

func (r *Redis) ClearAll() {
	ctx, cancel := r.opCtx()
	defer cancel()
	if err := r.client.Del(ctx, r.key(keyToken), r.key(keyUser)).Err(); err != nil {
		r.log.Warn().Err(err).Msg("redis clear failed")
	}
}

func (r *Redis) get(key string) (string, bool) {
	ctx, cancel := r.opCtx()
	defer cancel()
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str("key", key).Msg("redis read failed")
		}
		return "", false
	}
	return val, val != ""
}

func (r *Redis) set(key, val string) {
	ctx, cancel := r.opCtx()
	defer cancel()
	if err := r.client.Set(ctx, r.key(key), val, 0).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("redis write failed")
	}
}

func (r *Redis) del(key string) {
	ctx, cancel := r.opCtx()
	defer cancel()
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("redis delete failed")
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

func (r *Redis) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.opTimeout)
}
