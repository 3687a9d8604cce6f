package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
)

type slotsCacheEntry struct {
	Slots    []domain.Slot
	StoredAt time.Time
}

// CacheAdapter keeps computed slot sets in an LRU keyed by
// (doctor, date, duration). Entries hold the pre-past-filter set; the
// availability service re-filters on read, so a cached entry never
// leaks past slots.
type CacheAdapter struct {
	cache  *lru.Cache[string, *slotsCacheEntry]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[string, *slotsCacheEntry](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func slotsKey(doctorID uuid.UUID, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s|%s|%d", doctorID, date.Format("2006-01-02"), durationMinutes)
}

func dayPrefix(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s|%s|", doctorID, date.Format("2006-01-02"))
}

func doctorPrefix(doctorID uuid.UUID) string {
	return doctorID.String() + "|"
}

func (c *CacheAdapter) GetSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]domain.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(slotsKey(doctorID, date, durationMinutes))
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"doctorId": doctorID,
			"date":     date.Format("2006-01-02"),
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.Format("2006-01-02"),
		"slotsCount": len(entry.Slots),
	})
	return entry.Slots, true
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.Format("2006-01-02"),
		"slotsCount": len(slots),
	})

	c.cache.Add(slotsKey(doctorID, date, durationMinutes), &slotsCacheEntry{
		Slots:    slots,
		StoredAt: time.Now(),
	})
}

func (c *CacheAdapter) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	c.removeByPrefix(dayPrefix(doctorID, date))
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	c.removeByPrefix(doctorPrefix(doctorID))
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

// One entry exists per requested duration, so a day invalidation has
// to sweep every key under the doctor+date prefix.
func (c *CacheAdapter) removeByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
}
