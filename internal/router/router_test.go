// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawtune/internal/handlers"
	"pawtune/internal/history"
	"pawtune/internal/kv"
	"pawtune/internal/middleware"
	"pawtune/internal/session"
	"pawtune/internal/studio"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func newTestRouter(limit int) http.Handler {
	store := kv.NewMemoryStore()
	svc := studio.New(studio.Deps{
		History:     history.NewStore(store, 0),
		Credentials: history.NewCredentialStore(store, ""),
	})
	sessions := session.NewMemoryStore(false, 0)
	return New(Options{
		Sessions:      sessions,
		Studio:        handlers.NewStudio(svc, sessions),
		GenerateLimit: middleware.NewRateLimiter(limit, time.Minute),
	})
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthNeedsNoSession(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(5).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if c := cookieNamed(w.Result(), session.CookieName); c != nil {
		t.Error("health check should not start a session")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("request id header missing")
	}
}

func TestAPIIssuesCookies(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(5).ServeHTTP(w, httptest.NewRequest("GET", "/api/state", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	resp := w.Result()
	if cookieNamed(resp, session.CookieName) == nil {
		t.Error("session cookie missing")
	}
	if cookieNamed(resp, middleware.CSRFCookieName) == nil {
		t.Error("csrf cookie missing")
	}
}

func TestAPIRequiresCSRFToken(t *testing.T) {
	h := newTestRouter(5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/api/submit", strings.NewReader(`{}`)))
	if w.Code != http.StatusForbidden {
		t.Fatalf("without token: got %d, want 403", w.Code)
	}

	r := httptest.NewRequest("POST", "/api/submit", strings.NewReader(`{"sourceText":"초코"}`))
	r.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "token"})
	r.Header.Set(middleware.CSRFHeaderName, "token")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("with token: got %d: %s", w.Code, w.Body.String())
	}
}

func TestGenerationRoutesAreRateLimited(t *testing.T) {
	h := newTestRouter(1)

	// The first call starts a session; later calls reuse it.
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest("GET", "/api/state", nil))
	sess := cookieNamed(first.Result(), session.CookieName)

	send := func() int {
		r := httptest.NewRequest("POST", "/api/credential/check", nil)
		r.AddCookie(sess)
		r.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "token"})
		r.Header.Set(middleware.CSRFHeaderName, "token")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	// No key anywhere: the first check is answered, the second is throttled.
	if code := send(); code != http.StatusUnauthorized {
		t.Errorf("first check: got %d, want 401", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("second check: got %d, want 429", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(5).ServeHTTP(w, httptest.NewRequest("GET", "/api/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", w.Code)
	}
}
