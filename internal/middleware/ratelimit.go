package middleware

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"CARTOPIA_BACK-END/internal/config"
)

// emailLimiter holds a per-email rate limiter and its last access time.
type emailLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// ResetRateLimiter limits how often password-reset OTPs can be requested
// per email address. Entries are cleaned up in the background once idle.
type ResetRateLimiter struct {
	cfg config.RateLimitConfig

	mu       sync.Mutex
	limiters map[string]*emailLimiter

	stopCh chan struct{}
}

// NewResetRateLimiter creates a limiter and starts the cleanup loop.
func NewResetRateLimiter(cfg config.RateLimitConfig) *ResetRateLimiter {
	rl := &ResetRateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*emailLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *ResetRateLimiter) Stop() {
	close(rl.stopCh)
}

// Allow reports whether a reset request for the given email may proceed.
func (rl *ResetRateLimiter) Allow(email string) bool {
	allowed := rl.getOrCreate(email).Allow()
	if !allowed {
		slog.Warn("reset request rate limit exceeded", slog.String("email", email))
	}
	return allowed
}

// EntryCount returns the number of tracked emails. For tests and metrics.
func (rl *ResetRateLimiter) EntryCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *ResetRateLimiter) getOrCreate(email string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if el, exists := rl.limiters[email]; exists {
		el.lastAccess = time.Now()
		return el.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(rl.cfg.ResetRequestsPerMinute/60.0), rl.cfg.ResetBurst)
	rl.limiters[email] = &emailLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}
	return limiter
}

func (rl *ResetRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for longer than twice the cleanup interval.
func (rl *ResetRateLimiter) cleanup() {
	ttl := rl.cfg.CleanupInterval * 2
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for email, el := range rl.limiters {
		if now.Sub(el.lastAccess) > ttl {
			delete(rl.limiters, email)
		}
	}
}
