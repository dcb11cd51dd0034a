// Package cache implements the query cache: a cache-aside helper over a
// key/value store, backed by Redis in production.
package cache

import (
	"context"
	"encoding/json"

	"github.com/marius851000/spritecollab-srv/internal/config"
)

// Store is the key/value backend. Get's second return reports whether the
// key existed.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Flush(ctx context.Context) error
}

// Behaviour tells Cached whether a produced value should be stored.
type Behaviour[T any] struct {
	value T
	store bool
}

// Cache marks a value for storing.
func Cache[T any](v T) Behaviour[T] { return Behaviour[T]{value: v, store: true} }

// NoCache returns a value without storing it.
func NoCache[T any](v T) Behaviour[T] { return Behaviour[T]{value: v} }

// Cached returns the cached value under key, or runs produce and stores the
// result when it asks for it. Values are serialized as JSON. A failed cache
// write only logs a warning; the produced value is still returned.
func Cached[T any](ctx context.Context, s Store, key string, produce func(ctx context.Context) (Behaviour[T], error)) (T, error) {
	var zero T
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if found {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return zero, err
		}
		return v, nil
	}

	b, err := produce(ctx)
	if err != nil {
		return zero, err
	}
	if b.store {
		data, err := json.Marshal(b.value)
		if err != nil {
			warnf("Failed writing cache entry for '%s' (stage 1): %v", key, err)
		} else if err := s.Set(ctx, key, string(data)); err != nil {
			warnf("Failed writing cache entry for '%s' (stage 2): %v", key, err)
		}
	}
	return b.value, nil
}

func warnf(format string, args ...interface{}) {
	if config.Logger != nil {
		config.Logger.Warnf(format, args...)
	}
}
