package cache

import (
	"context"
	"sync"
	"time"

	"github.com/listinglens/dashboard/internal/domain"
)

// DefaultTTL is how long a rendered report stays addressable
const DefaultTTL = 30 * time.Minute

// reportItem represents a single report in the cache with expiration
type reportItem struct {
	report     *domain.Report
	expiration time.Time
}

// ReportCache is a thread-safe in-memory report store with TTL support.
// Reports are kept by pointer: they carry NaN and infinite values that a
// serialization round trip would not preserve.
type ReportCache struct {
	data  map[string]reportItem
	ttl   time.Duration
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewReportCache creates a new report cache and starts its cleanup loop
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache := &ReportCache{
		data: make(map[string]reportItem),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval(ttl))

	return cache
}

// cleanupInterval sweeps a few times per TTL, at most every 10 minutes
func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Save stores a report under its ID
func (c *ReportCache) Save(ctx context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return domain.ErrReportNotFound
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[report.ID] = reportItem{
		report:     report,
		expiration: time.Now().Add(c.ttl),
	}
	return nil
}

// Get retrieves a report; expired reports are reported as not found
func (c *ReportCache) Get(ctx context.Context, id string) (*domain.Report, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[id]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrReportNotFound
	}
	return item.report, nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *ReportCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *ReportCache) removeExpired(now time.Time) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for id, item := range c.data {
		if now.After(item.expiration) {
			delete(c.data, id)
			removed++
		}
	}
	return removed
}

// Size returns the current number of reports in the cache (reported by /health)
func (c *ReportCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Close stops the cleanup loop
func (c *ReportCache) Close() {
	c.once.Do(func() { close(c.stop) })
}
