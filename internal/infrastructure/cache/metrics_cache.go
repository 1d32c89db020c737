// Package cache provides Redis-backed caches for computed data.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"go.uber.org/zap"
)

const metricsKeyPrefix = "vendor:metrics:"

// RedisMetricsCache caches vendor dashboard metrics in Redis. It fails
// open: any Redis error is logged and treated as a cache miss.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisMetricsCache creates a metrics cache over an existing client.
func NewRedisMetricsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMetricsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisMetricsCache{client: client, ttl: ttl, logger: logger}
}

var _ vendorapp.MetricsCache = (*RedisMetricsCache)(nil)

// GetMetrics returns cached metrics, or false on a miss or error.
func (c *RedisMetricsCache) GetMetrics(ctx context.Context, vendorID uuid.UUID) (*vendorapp.DashboardMetrics, bool) {
	data, err := c.client.Get(ctx, metricsKeyPrefix+vendorID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Metrics cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var metrics vendorapp.DashboardMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		c.logger.Warn("Metrics cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, metricsKeyPrefix+vendorID.String())
		return nil, false
	}
	return &metrics, true
}

// SetMetrics stores metrics with the configured TTL. Failures are logged
// and swallowed.
func (c *RedisMetricsCache) SetMetrics(ctx context.Context, vendorID uuid.UUID, metrics *vendorapp.DashboardMetrics) {
	data, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, metricsKeyPrefix+vendorID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Metrics cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached metrics after a catalog mutation.
func (c *RedisMetricsCache) Invalidate(ctx context.Context, vendorID uuid.UUID) {
	if err := c.client.Del(ctx, metricsKeyPrefix+vendorID.String()).Err(); err != nil {
		c.logger.Warn("Metrics cache invalidation failed", zap.Error(err))
	}
}
