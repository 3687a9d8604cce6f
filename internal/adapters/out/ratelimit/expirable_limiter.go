package ratelimit

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

// ExpirableLimiter is a windowed per-key counter on an expiring LRU.
// Eviction is owned by the LRU (TTL plus size cap), so the counter
// map cannot grow for the process lifetime.
type ExpirableLimiter struct {
	entries *expirable.LRU[string, int]
	max     int
	mu      sync.Mutex
	logger  out.LoggerPort
}

func NewExpirableLimiter(cfg *config.Config, logger out.LoggerPort) *ExpirableLimiter {
	if !cfg.RateLimit.Enabled {
		logger.Info("ratelimit.disabled", out.LogFields{
			"message": "Rate limiting is disabled",
		})
		return nil
	}

	return &ExpirableLimiter{
		entries: expirable.NewLRU[string, int](cfg.RateLimit.MaxEntries, nil, cfg.RateLimitWindow()),
		max:     cfg.RateLimit.MaxPerKey,
		logger:  logger.WithModule("RateLimiter"),
	}
}

// Allow records one hit and reports whether key is under budget.
// Each hit refreshes the entry TTL, so the window slides; that only
// errs toward limiting a busy client longer, never toward letting
// one through.
func (l *ExpirableLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, _ := l.entries.Get(key)
	if count >= l.max {
		l.logger.Debug("ratelimit.rejected", out.LogFields{
			"key":   key,
			"count": count,
		})
		return false
	}

	l.entries.Add(key, count+1)
	return true
}
