package cache

import (
	"sync"
	"time"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/domain/models"
)

// refreshInterval bounds one cache generation. The upstream dataset only
// changes once per day, so entries are cleared wholesale rather than expiring
// per key.
const refreshInterval = 24 * time.Hour

// PredictionCache is a process-wide ticker to prediction map refreshed
// wholesale once per day. Invalidation is lazy: every lookup first checks the
// elapsed time since the last refresh and, at or past the boundary, clears the
// whole map in one step. Entries are never evicted individually and never
// persisted.
//
// Concurrent clear/repopulate races are resolved with a generation counter:
// Lookup reports the generation it observed, and Put drops the write when the
// generation has moved on (the computed entry belongs to a cleared day).
type PredictionCache struct {
	mu          sync.Mutex
	entries     map[string]*models.Prediction
	lastRefresh time.Time
	generation  uint64
	now         func() time.Time
}

// New creates an empty cache. The last refresh starts one full interval in the
// past so the first request always begins a fresh generation. A nil clock
// falls back to time.Now.
func New(now func() time.Time) *PredictionCache {
	if now == nil {
		now = time.Now
	}
	return &PredictionCache{
		entries:     make(map[string]*models.Prediction),
		lastRefresh: now().Add(-refreshInterval),
		now:         now,
	}
}

// Lookup runs the daily invalidation check and then a map get. It returns the
// entry if present and the generation the lookup observed, which a later Put
// must present back.
func (c *PredictionCache) Lookup(ticker string) (*models.Prediction, bool, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybeInvalidate()
	e, ok := c.entries[ticker]
	return e, ok, c.generation
}

// Put stores the entry unless the cache has moved to a newer generation since
// the lookup that started the computation. Returns whether the write landed.
func (c *PredictionCache) Put(ticker string, e *models.Prediction, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.entries[ticker] = e
	return true
}

// Len reports the number of entries in the current generation.
func (c *PredictionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// LastRefresh reports when the current generation began.
func (c *PredictionCache) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

// maybeInvalidate clears the whole map once the elapsed time since the last
// refresh reaches the interval. Caller must hold the lock.
func (c *PredictionCache) maybeInvalidate() {
	now := c.now()
	if now.Sub(c.lastRefresh) >= refreshInterval {
		c.entries = make(map[string]*models.Prediction)
		c.lastRefresh = now
		c.generation++
	}
}
