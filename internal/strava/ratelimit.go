package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava allows 100 requests per 15 minutes and 1000 per day. The app
// only makes a handful of calls per sync, so the limiter just tracks
// usage from response headers and spaces requests out.

// RateLimiter tracks Strava API usage against the published limits.
type RateLimiter struct {
	mu sync.Mutex

	shortLimit int
	shortUsage int
	dailyLimit int
	dailyUsage int

	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter creates a limiter seeded with Strava's default limits.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		shortLimit:  100,
		dailyLimit:  1000,
		minInterval: 150 * time.Millisecond,
	}
}

// Wait enforces the minimum interval between requests.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	wait := r.minInterval - time.Since(r.lastRequest)
	r.mu.Unlock()

	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	r.lastRequest = time.Now()
	r.mu.Unlock()
	return nil
}

// UpdateFromHeaders syncs usage counters from Strava's rate limit
// headers, e.g. X-RateLimit-Usage: "34,512".
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if short, daily, ok := parseRateHeader(h.Get("X-RateLimit-Usage")); ok {
		r.shortUsage, r.dailyUsage = short, daily
	}
	if short, daily, ok := parseRateHeader(h.Get("X-RateLimit-Limit")); ok {
		r.shortLimit, r.dailyLimit = short, daily
	}
}

// Status returns remaining requests in each window.
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortLimit - r.shortUsage, r.dailyLimit - r.dailyUsage
}

func parseRateHeader(value string) (short, daily int, ok bool) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	short, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	daily, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return short, daily, true
}
