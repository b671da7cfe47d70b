package cache

import (
	"context"
	"errors"
	"time"

	"github.com/KennethTannn98/stockflow-console/pkg/redis"
)

// redisConn is the slice of pkg/redis the store uses.
type redisConn interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	QueryKey(parts ...string) string
}

// Redis is a Store backed by a shared redis instance, for running several
// console sessions against the same API.
type Redis struct {
	conn redisConn
	ttl  time.Duration
}

// NewRedis wraps client as a Store whose entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Redis{conn: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	value, err := r.conn.Get(ctx, r.conn.QueryKey(string(key)))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *Redis) Set(ctx context.Context, key Key, value []byte) error {
	return r.conn.Set(ctx, r.conn.QueryKey(string(key)), string(value), r.ttl)
}

func (r *Redis) Invalidate(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	named := make([]string, 0, len(keys))
	for _, key := range keys {
		named = append(named, r.conn.QueryKey(string(key)))
	}
	return r.conn.Del(ctx, named...)
}
