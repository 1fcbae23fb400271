// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session keeps per-browser studio state. A session is identified
// by a UUID cookie and stored as JSON in Valkey (or process memory for
// single-instance setups) with a sliding TTL. The session ID doubles as
// the client identity for history and saved credentials.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pawtune/internal/models"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "pt_session"

	// DefaultTTL is how long an idle session lives.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "pawtune:session:"
)

var errMissing = errors.New("session missing")

// Data is the session payload: where the client is in the studio flow,
// what they are editing and the last thing they produced.
type Data struct {
	ID        string                   `json:"id"`
	Step      string                   `json:"step"`
	Draft     models.GenerationOptions `json:"draft"`
	Result    *models.GenerationResult `json:"result,omitempty"`
	HistoryID string                   `json:"history_id,omitempty"`
	Error     string                   `json:"error,omitempty"`
	Warning   string                   `json:"warning,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// backend is the raw byte store under a session Store.
type backend interface {
	get(ctx context.Context, key string) ([]byte, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	touch(ctx context.Context, key string, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

// Store manages the session lifecycle.
type Store struct {
	b      backend
	ttl    time.Duration
	secure bool
}

func newStore(b backend, secure bool, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{b: b, ttl: ttl, secure: secure}
}

// Create starts a new session for data, stores it and sets the cookie.
// It returns the session ID, which is also written to data.ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	data.ID = uuid.NewString()
	data.CreatedAt = time.Now().UTC()
	if err := s.Save(ctx, w, data); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return data.ID, nil
}

// Get returns the session named by the request cookie. Returns nil if no
// valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, nil
	}

	payload, err := s.b.get(ctx, keyPrefix+cookie.Value)
	if errors.Is(err, errMissing) {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	data.ID = cookie.Value
	return &data, nil
}

// Save writes data, resets its TTL and refreshes the cookie.
func (s *Store) Save(ctx context.Context, w http.ResponseWriter, data *Data) error {
	if data.ID == "" {
		return errors.New("session save: no id")
	}
	data.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.b.set(ctx, keyPrefix+data.ID, payload, s.ttl); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	s.setCookie(w, data.ID)
	return nil
}

// Touch extends the session without rewriting it.
func (s *Store) Touch(ctx context.Context, w http.ResponseWriter, id string) error {
	if err := s.b.touch(ctx, keyPrefix+id, s.ttl); err != nil {
		return fmt.Errorf("session touch: %w", err)
	}
	s.setCookie(w, id)
	return nil
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.b.del(ctx, keyPrefix+cookie.Value); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})
	return nil
}

func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}
