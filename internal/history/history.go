// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package history persists finished generations per client. Each client's
// history is one JSON list, newest first, capped, and never holds inline
// images.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"pawtune/internal/kv"
	"pawtune/internal/models"
)

// DefaultLimit is how many items a client's history keeps.
const DefaultLimit = 30

// ErrItemNotFound is returned when no history item has the requested id.
var ErrItemNotFound = errors.New("history item not found")

// StorageError means a history write could not be persisted at all, not
// even the single-item emergency save. Callers treat it as a warning.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store reads and writes client histories in a key-value store. Writes
// for one client are serialized within the process.
type Store struct {
	kv    kv.Store
	limit int
	now   func() time.Time

	locks sync.Map // client -> *sync.Mutex
}

// NewStore creates a history store. limit <= 0 means DefaultLimit.
func NewStore(s kv.Store, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{kv: s, limit: limit, now: time.Now}
}

func historyKey(client string) string { return "history:" + client }

// lock holds the client's write lock until the returned func is called.
func (s *Store) lock(client string) func() {
	v, _ := s.locks.LoadOrStore(client, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// List returns the client's history, newest first. A missing history is
// empty; a corrupt one is deleted and reported as empty.
func (s *Store) List(ctx context.Context, client string) ([]models.HistoryItem, error) {
	raw, err := s.kv.Get(ctx, historyKey(client))
	if errors.Is(err, kv.ErrNotFound) {
		return []models.HistoryItem{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}

	var items []models.HistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("corrupt history discarded", "client", client, "error", err)
		if derr := s.kv.Delete(ctx, historyKey(client)); derr != nil {
			slog.Warn("corrupt history delete failed", "client", client, "error", derr)
		}
		return []models.HistoryItem{}, nil
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	return items, nil
}

// Get returns one item by id.
func (s *Store) Get(ctx context.Context, client, id string) (*models.HistoryItem, error) {
	items, err := s.List(ctx, client)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

// Append stores result as the newest item and evicts the oldest beyond
// the limit. Inline images are stripped first. If the full list cannot be
// written, only the new item is saved; if that fails too a *StorageError
// is returned alongside the item.
func (s *Store) Append(ctx context.Context, client string, result models.GenerationResult, sourceText string) (models.HistoryItem, error) {
	defer s.lock(client)()

	item := models.NewHistoryItem(result, sourceText, s.now())

	existing, err := s.List(ctx, client)
	if err != nil {
		return item, err
	}
	if len(existing) > 0 {
		item.ID = nextID(item.ID, existing[0].ID)
	}

	items := make([]models.HistoryItem, 0, min(len(existing)+1, s.limit))
	items = append(items, item)
	for _, it := range existing {
		if len(items) == s.limit {
			break
		}
		items = append(items, it)
	}

	if err := s.write(ctx, client, items); err != nil {
		slog.Warn("history save failed, keeping newest item only", "client", client, "items", len(items), "error", err)
		if err := s.write(ctx, client, items[:1]); err != nil {
			return item, &StorageError{Op: "append", Err: err}
		}
	}
	return item, nil
}

// Remove deletes one item by id.
func (s *Store) Remove(ctx context.Context, client, id string) error {
	defer s.lock(client)()

	items, err := s.List(ctx, client)
	if err != nil {
		return err
	}
	kept := make([]models.HistoryItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return ErrItemNotFound
	}
	if err := s.write(ctx, client, kept); err != nil {
		return &StorageError{Op: "remove", Err: err}
	}
	return nil
}

func (s *Store) write(ctx context.Context, client string, items []models.HistoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("history marshal: %w", err)
	}
	return s.kv.Set(ctx, historyKey(client), data)
}

// nextID keeps ids unique when two items are created in the same
// millisecond: a candidate not above the newest id becomes newest+1.
func nextID(candidate, newest string) string {
	c, err1 := strconv.ParseInt(candidate, 10, 64)
	n, err2 := strconv.ParseInt(newest, 10, 64)
	if err1 != nil || err2 != nil || c > n {
		return candidate
	}
	return strconv.FormatInt(n+1, 10)
}
