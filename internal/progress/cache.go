package progress

import (
	"sync"
	"time"

	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/models"
)

// YearCacheKey captures the quantities that can change a year view within
// a session: the requested year, which day "today" is, and today's item
// counts. Edits to past days must be followed by Invalidate.
type YearCacheKey struct {
	Year           int
	TodayKey       string
	TodayCompleted int
	TodayTotal     int
}

// YearCache is a single-slot memo for YearData, owned and injected by the
// calling layer rather than hidden process-wide state. Safe for
// concurrent use.
type YearCache struct {
	mu     sync.RWMutex
	key    YearCacheKey
	result *YearResult
}

// Get returns the cached result for key, if present.
func (c *YearCache) Get(key YearCacheKey) (YearResult, bool) {
	if c == nil {
		return YearResult{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil || c.key != key {
		return YearResult{}, false
	}
	return *c.result, true
}

// Put stores the result under key, replacing any previous slot.
func (c *YearCache) Put(key YearCacheKey, result YearResult) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.result = &result
}

// Invalidate drops the cached slot.
func (c *YearCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
}

// CachedYearData answers from the cache when today's entry is unchanged,
// recomputing otherwise. A nil cache degrades to a plain YearData call.
func CachedYearData(cache *YearCache, year int, entries []models.DayEntry, today time.Time, threshold int) YearResult {
	if cache == nil {
		return YearData(year, entries, today, threshold)
	}

	todayKey := daykey.Make(today)
	key := YearCacheKey{Year: year, TodayKey: todayKey}
	if entry, ok := indexByDay(entries)[todayKey]; ok {
		key.TodayCompleted = entry.CompletedCount()
		key.TodayTotal = entry.TotalItems()
	}

	if result, ok := cache.Get(key); ok {
		return result
	}
	result := YearData(year, entries, today, threshold)
	cache.Put(key, result)
	return result
}
