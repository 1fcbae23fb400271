// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package kv is the small key-value contract behind history and the saved
// credential, with Valkey, PostgreSQL and in-process backends.
package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("kv: key not found")

	// ErrQuotaExceeded is returned by a quota-limited store for oversize values.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store reads and writes opaque values by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Backend names accepted by KV_BACKEND.
const (
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// quotaStore rejects writes larger than max bytes, the way a browser's
// local storage refuses writes past its quota.
type quotaStore struct {
	Store
	max int
}

// WithQuota wraps s so Set fails with ErrQuotaExceeded for values larger
// than max bytes. max <= 0 returns s unchanged.
func WithQuota(s Store, max int) Store {
	if max <= 0 {
		return s
	}
	return &quotaStore{Store: s, max: max}
}

func (q *quotaStore) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > q.max {
		return fmt.Errorf("set %s (%d bytes, limit %d): %w", key, len(value), q.max, ErrQuotaExceeded)
	}
	return q.Store.Set(ctx, key, value)
}
