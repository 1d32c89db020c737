package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/application/vendorapp"
)

// InMemoryMetricsCache is a process-local metrics cache for development and
// tests. Entries expire lazily on read.
type InMemoryMetricsCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]inMemoryMetricsEntry
}

type inMemoryMetricsEntry struct {
	metrics   vendorapp.DashboardMetrics
	expiresAt time.Time
}

// NewInMemoryMetricsCache creates a new in-memory metrics cache.
func NewInMemoryMetricsCache(ttl time.Duration) *InMemoryMetricsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InMemoryMetricsCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]inMemoryMetricsEntry),
	}
}

var _ vendorapp.MetricsCache = (*InMemoryMetricsCache)(nil)

// GetMetrics returns cached metrics, or false on a miss.
func (c *InMemoryMetricsCache) GetMetrics(_ context.Context, vendorID uuid.UUID) (*vendorapp.DashboardMetrics, bool) {
	c.mu.RLock()
	entry, ok := c.entries[vendorID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, vendorID)
		c.mu.Unlock()
		return nil, false
	}

	metrics := entry.metrics
	return &metrics, true
}

// SetMetrics stores a copy of the metrics.
func (c *InMemoryMetricsCache) SetMetrics(_ context.Context, vendorID uuid.UUID, metrics *vendorapp.DashboardMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[vendorID] = inMemoryMetricsEntry{
		metrics:   *metrics,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached entry.
func (c *InMemoryMetricsCache) Invalidate(_ context.Context, vendorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, vendorID)
}
