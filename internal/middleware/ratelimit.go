// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-client token bucket. Buckets idle for a few windows
// are evicted by the cache janitor.
type RateLimiter struct {
	buckets *cache.Cache
	every   rate.Limit
	burst   int
	window  time.Duration
}

// NewRateLimiter allows limit requests per window per client, refilling
// evenly across the window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets: cache.New(3*window, 5*time.Minute),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
	}
}

// allow checks whether the given key is within the rate limit.
func (rl *RateLimiter) allow(key string) bool {
	var lim *rate.Limiter
	if v, ok := rl.buckets.Get(key); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(rl.every, rl.burst)
		if err := rl.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
			// Lost a race with another request for the same key.
			if v, ok := rl.buckets.Get(key); ok {
				lim = v.(*rate.Limiter)
			}
		}
	}
	// Sliding expiry: an active client keeps its bucket.
	rl.buckets.Set(key, lim, cache.DefaultExpiration)
	return lim.Allow()
}

// Middleware rate-limits by session client, falling back to client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ClientID(r.Context())
		if key == "" {
			key = "ip:" + clientIP(r)
		}
		if !rl.allow(key) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port).
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
