package http

import (
	"sync"
	"sync/atomic"
	"time"
)

// Mutations allowed per principal per minute. Reads are unthrottled; they
// are served from the report cache in the common case.
const (
	rateLimitWindow = time.Minute
	rateLimitBurst  = 60
)

// rateLimiter throttles mutating requests per principal (or per client IP
// for unauthenticated callers).
type rateLimiter struct {
	mu           sync.Mutex
	callers      map[string]*callerInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type callerInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		callers:     make(map[string]*callerInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale caller entries.
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes caller entries idle for over 10 minutes.
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for key, caller := range rl.callers {
		if caller.lastRequest.Before(cutoff) {
			delete(rl.callers, key)
		}
	}
}

// stop gracefully shuts down the rate limiter cleanup goroutine.
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

// allow checks whether a mutation from the given caller should proceed.
func (rl *rateLimiter) allow(key string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	caller, exists := rl.callers[key]

	if !exists {
		rl.callers[key] = &callerInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	if now.Sub(caller.lastRequest) > rateLimitWindow {
		caller.requests = 1
		caller.lastRequest = now
		return true
	}

	caller.requests++
	caller.lastRequest = now

	if caller.requests > rateLimitBurst {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}

	return true
}
