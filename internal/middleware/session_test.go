// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawtune/internal/session"
)

func TestLoadSession(t *testing.T) {
	store := session.NewMemoryStore(false, time.Hour)

	var seen string
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientID(r.Context())
	}))

	// First request starts a session.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if seen == "" {
		t.Fatal("no client id on first request")
	}
	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != seen {
		t.Fatalf("cookie: %+v, want value %q", cookie, seen)
	}

	// Second request with the cookie keeps the identity.
	first := seen
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != first {
		t.Errorf("client id changed: %q -> %q", first, seen)
	}

	// A stale cookie gets a fresh session.
	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "00000000-0000-4000-8000-000000000000"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen == first || seen == "00000000-0000-4000-8000-000000000000" {
		t.Errorf("stale cookie reused: %q", seen)
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if SessionFromCtx(req.Context()) != nil || ClientID(req.Context()) != "" {
		t.Error("expected no session without LoadSession")
	}
}
