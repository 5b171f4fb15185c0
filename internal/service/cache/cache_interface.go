// Package cache defines the contract for catalog snapshot caches.
package cache

import "github.com/guttosm/packaging-service/internal/domain/model"

// Cache stores package catalog snapshots keyed by location.
type Cache interface {
	Get(key string) ([]model.PackageDimension, bool)
	Set(key string, value []model.PackageDimension)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
