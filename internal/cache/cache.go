// Package cache is the query cache between the screens and the API client.
// Fetch results are stored per read key; a successful mutation invalidates
// the matching keys so the next read refetches. The cache never learns from
// mutation responses.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
)

// Key identifies one cached read.
type Key string

// Entity names used as cache key roots.
const (
	EntityProducts     = "products"
	EntityTransactions = "transactions"
	EntityAlerts       = "alerts"
	EntityUsers        = "users"
	EntityDashboard    = "dashboard"
)

// EntityKey is the read key for an entity's list fetch.
func EntityKey(entity string) Key {
	return Key(entity)
}

// RecordKey is the read key for a single-record fetch.
func RecordKey(entity string, id int) Key {
	return Key(entity + ":" + strconv.Itoa(id))
}

// ScopedKey is the read key for a named sub-query of an entity, e.g. the
// dashboard's low-stock list or a product's transaction history.
func ScopedKey(entity, scope string) Key {
	return Key(entity + ":" + scope)
}

// Store is one cache backend. Get misses are not errors; backend failures
// surface as errors so callers can decide to fall through to the source.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte) error
	Invalidate(ctx context.Context, keys ...Key) error
}

// Fetch returns the cached value at key, or runs fetch and fills the cache.
// A failing backend degrades to a plain fetch; a failing fetch is returned
// to the caller untouched.
func Fetch[T any](ctx context.Context, store Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if store != nil {
		if raw, ok, err := store.Get(ctx, key); err == nil && ok {
			var cached T
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if store != nil {
		if raw, err := json.Marshal(value); err == nil {
			// A cache write failure must not fail the read.
			_ = store.Set(ctx, key, raw)
		}
	}
	return value, nil
}
