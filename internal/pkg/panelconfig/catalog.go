package panelconfig

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/internal/pkg/cache"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

const (
	// FinalCacheKey holds the post-override catalog the storefront serves.
	FinalCacheKey = "providers:normalized:v1"
	// Admin overrides change more often than upstream catalogs, so the
	// final list has its own TTL, independent of the raw catalog's.
	finalCacheTTL = 10 * time.Minute
)

// Catalog composes the aggregator and the override engine into the final
// storefront-facing service list.
type Catalog struct {
	aggregator *smmprovider.Aggregator
	config     *Store
	store      cache.Store
}

func NewCatalog(aggregator *smmprovider.Aggregator, config *Store, store cache.Store) *Catalog {
	return &Catalog{
		aggregator: aggregator,
		config:     config,
		store:      store,
	}
}

// Services returns the final catalog: raw aggregation with admin overrides
// applied, cached under its own key. Like the aggregator it never fails.
func (c *Catalog) Services(ctx context.Context) []smmprovider.Service {
	if cached, ok := c.store.Get(FinalCacheKey); ok {
		var services []smmprovider.Service
		if err := json.Unmarshal([]byte(cached), &services); err == nil {
			return services
		}
		log.Warn("final catalog cache entry is malformed, recomputing")
	}

	raw := c.aggregator.RawServices(ctx)
	services := ApplyOverrides(raw, c.config.Load())

	if data, err := json.Marshal(services); err == nil {
		if err := c.store.Set(FinalCacheKey, string(data), finalCacheTTL); err != nil {
			log.Warnf("failed to cache final catalog: %v", err)
		}
	}
	return services
}
