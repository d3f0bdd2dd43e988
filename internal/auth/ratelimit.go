package auth

import (
	"strings"
	"sync"
	"time"
)

// RateLimiter throttles login attempts per client IP and email. After
// MaxAttempts failures inside the window the pair is locked out.
type RateLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// RateLimitConfig contains configuration for the rate limiter.
type RateLimitConfig struct {
	MaxAttempts     int           // default 5
	WindowDuration  time.Duration // default 15m
	LockoutDuration time.Duration // default 30m
	CleanupInterval time.Duration // default 5m
}

// NewRateLimiter starts a limiter and its cleanup goroutine. Call Stop when
// done with it.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = 15 * time.Minute
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxAttempts,
		windowDuration:  cfg.WindowDuration,
		lockoutDuration: cfg.LockoutDuration,
		cleanupInterval: cfg.CleanupInterval,
		now:             time.Now,
		stopCleanup:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func makeKey(ip, email string) string {
	return ip + "|" + strings.ToLower(strings.TrimSpace(email))
}

// Allow reports whether a login attempt may proceed and, if not, how long
// the caller has to wait.
func (rl *RateLimiter) Allow(ip, email string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.attempts[makeKey(ip, email)]
	if !exists {
		return true, 0
	}
	if now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}
	if now.Sub(record.firstAttempt) > rl.windowDuration || record.count < rl.maxAttempts {
		return true, 0
	}
	return false, rl.lockoutDuration
}

// RecordFailure counts a failed attempt and reports whether it triggered
// a lockout.
func (rl *RateLimiter) RecordFailure(ip, email string) (bool, time.Duration) {
	key := makeKey(ip, email)
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.attempts[key]
	if !exists || now.Sub(record.firstAttempt) > rl.windowDuration {
		record = &attemptRecord{firstAttempt: now}
		rl.attempts[key] = record
	}

	record.count++
	if record.count >= rl.maxAttempts {
		record.lockedUntil = now.Add(rl.lockoutDuration)
		return true, rl.lockoutDuration
	}
	return false, 0
}

// RecordSuccess forgets earlier failures for the pair.
func (rl *RateLimiter) RecordSuccess(ip, email string) {
	rl.mu.Lock()
	delete(rl.attempts, makeKey(ip, email))
	rl.mu.Unlock()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup drops records whose window and lockout have both passed.
func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, record := range rl.attempts {
		windowExpired := now.Sub(record.firstAttempt) > rl.windowDuration
		lockoutExpired := !now.Before(record.lockedUntil)
		if windowExpired && lockoutExpired {
			delete(rl.attempts, key)
		}
	}
}
