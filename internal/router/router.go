// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// pawtune studio API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pawtune/internal/handlers"
	"pawtune/internal/middleware"
	"pawtune/internal/session"
)

// Options configures the router.
type Options struct {
	Sessions      *session.Store
	Studio        *handlers.Studio
	GenerateLimit *middleware.RateLimiter // applied to the calls that hit Gemini
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(o Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check: no session, no CSRF.
	r.Get("/health", healthHandler)

	s := o.Studio
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCSRF(o.SecureCookies))
		r.Use(middleware.LoadSession(o.Sessions))

		r.Get("/catalog", s.Catalog)
		r.Get("/catalog/{category}/defaults", s.Defaults)

		r.Get("/state", s.State)
		r.Put("/draft", s.UpdateDraft)
		r.Post("/submit", s.Submit)
		r.Post("/edit", s.Edit)
		r.Post("/reset", s.Reset)

		r.Get("/credential", s.Credential)
		r.Put("/credential", s.SaveCredential)

		// Calls that spend Gemini quota are rate limited per client.
		r.Group(func(r chi.Router) {
			if o.GenerateLimit != nil {
				r.Use(o.GenerateLimit.Middleware)
			}
			r.Post("/extract", s.Extract)
			r.Post("/confirm", s.Confirm)
			r.Post("/credential/check", s.CheckCredential)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.History)
			r.Get("/{id}", s.OpenHistory)
			r.Delete("/{id}", s.DeleteHistory)
			r.Get("/{id}/sheet", s.Sheet)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
