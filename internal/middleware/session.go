// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"pawtune/internal/session"
)

// SessionKey is the context key for the session data.
const SessionKey contextKey = "session"

// LoadSession makes sure every request has a session: it loads the one
// named by the cookie, or starts a new one. The session ID is the client
// identity for everything downstream.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			data, err := store.Get(ctx, r)
			if err != nil {
				// Unreadable session: start over rather than lock the client out.
				slog.Warn("session load failed", "error", err, "request_id", RequestID(ctx))
				data = nil
			}

			if data == nil {
				data = &session.Data{}
				if _, err := store.Create(ctx, w, data); err != nil {
					slog.Error("session create failed", "error", err, "request_id", RequestID(ctx))
					writeError(w, http.StatusServiceUnavailable, "session", "session storage unavailable")
					return
				}
			} else if err := store.Touch(ctx, w, data.ID); err != nil {
				slog.Warn("session touch failed", "client", data.ID, "error", err)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, SessionKey, data)))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if LoadSession did not run.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// ClientID returns the session ID of the request, or "".
func ClientID(ctx context.Context) string {
	if data := SessionFromCtx(ctx); data != nil {
		return data.ID
	}
	return ""
}
