// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// NewStore creates a session store backed by the given Valkey client.
func NewStore(client *redis.Client, secure bool, ttl time.Duration) *Store {
	return newStore(valkeyBackend{c: client}, secure, ttl)
}

// NewMemoryStore creates a session store that lives in process memory.
func NewMemoryStore(secure bool, ttl time.Duration) *Store {
	return newStore(memoryBackend{c: cache.New(DefaultTTL, 10*time.Minute)}, secure, ttl)
}

type valkeyBackend struct{ c *redis.Client }

func (v valkeyBackend) get(ctx context.Context, key string) ([]byte, error) {
	b, err := v.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMissing
	}
	return b, err
}

func (v valkeyBackend) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return v.c.Set(ctx, key, value, ttl).Err()
}

func (v valkeyBackend) touch(ctx context.Context, key string, ttl time.Duration) error {
	return v.c.Expire(ctx, key, ttl).Err()
}

func (v valkeyBackend) del(ctx context.Context, key string) error {
	return v.c.Del(ctx, key).Err()
}

type memoryBackend struct{ c *cache.Cache }

func (m memoryBackend) get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, errMissing
	}
	return v.([]byte), nil
}

func (m memoryBackend) set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	b := make([]byte, len(value))
	copy(b, value)
	m.c.Set(key, b, ttl)
	return nil
}

func (m memoryBackend) touch(_ context.Context, key string, ttl time.Duration) error {
	// go-cache has no expiry-only update; Replace keeps the write confined
	// to keys that still exist.
	if v, ok := m.c.Get(key); ok {
		_ = m.c.Replace(key, v, ttl)
	}
	return nil
}

func (m memoryBackend) del(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
