package smmprovider

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/internal/pkg/cache"
	"github.com/boostgridhq/BoostGrid/internal/pkg/env"
	"github.com/boostgridhq/BoostGrid/internal/pkg/fx"
)

const (
	// RawCacheKey holds the pre-override cross-provider catalog.
	RawCacheKey = "providers:raw:v2"
	rawCacheTTL = 5 * time.Minute
)

// Aggregator builds the normalized cross-provider catalog: registry read,
// parallel per-provider fetch, classification, one flat cached list.
type Aggregator struct {
	registry *Registry
	fetcher  Fetcher
	fx       *fx.Resolver
	store    cache.Store
}

func NewAggregator(registry *Registry, fetcher Fetcher, resolver *fx.Resolver, store cache.Store) *Aggregator {
	return &Aggregator{
		registry: registry,
		fetcher:  fetcher,
		fx:       resolver,
		store:    store,
	}
}

// RawServices returns the full normalized catalog before admin overrides.
// It never fails: provider errors degrade to empty listings and the worst
// case is an empty catalog.
func (a *Aggregator) RawServices(ctx context.Context) []Service {
	if cached, ok := a.store.Get(RawCacheKey); ok {
		var services []Service
		if err := json.Unmarshal([]byte(cached), &services); err == nil {
			return services
		}
		// Unreadable cache entries heal themselves on the next write.
		log.Warn("raw catalog cache entry is malformed, recomputing")
	}

	providers := a.registry.Enabled()
	if len(a.registry.Read()) == 0 {
		if demo, ok := demoProviderFromEnv(); ok {
			log.Info("provider registry is empty, using demo provider")
			providers = []ProviderConfig{demo}
		}
	}
	if len(providers) == 0 {
		return []Service{}
	}

	// Resolve the shared FX rate once and reuse it for every provider that
	// needs conversion.
	fxRate := fx.FallbackUsdToInr
	if needsFx(providers) {
		fxRate = a.fx.UsdToInr(ctx)
	}

	// One goroutine per provider with a per-provider result slot, so one
	// slow upstream neither blocks the others nor shuffles the output
	// order within a pass.
	results := make([][]RawService, len(providers))
	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(i int, provider ProviderConfig) {
			defer wg.Done()
			listing, err := a.fetcher.Services(ctx, provider)
			if err != nil {
				log.Warnf("provider %s fetch failed, contributing no services: %v", provider.Key, err)
				return
			}
			results[i] = listing
		}(i, provider)
	}
	wg.Wait()

	services := make([]Service, 0, 256)
	for i, provider := range providers {
		for _, raw := range results[i] {
			svc, ok := Classify(raw, provider, fxRate)
			if !ok {
				// Outside the supported taxonomy, not an error.
				continue
			}
			services = append(services, svc)
		}
	}

	if data, err := json.Marshal(services); err == nil {
		if err := a.store.Set(RawCacheKey, string(data), rawCacheTTL); err != nil {
			log.Warnf("failed to cache raw catalog: %v", err)
		}
	}
	return services
}

func needsFx(providers []ProviderConfig) bool {
	for _, p := range providers {
		if p.Currency == CurrencyINR && p.ExchangeRate <= 0 {
			return true
		}
	}
	return false
}

// demoProviderFromEnv is the explicit replacement for the old silent
// hardcoded fallback panel: demo mode exists only when the operator sets
// DEMO_PROVIDER_URL, never by accident.
func demoProviderFromEnv() (ProviderConfig, bool) {
	apiURL := env.GetEnv("DEMO_PROVIDER_URL", "")
	if apiURL == "" {
		return ProviderConfig{}, false
	}
	currency := CurrencyUSD
	if env.GetEnv("DEMO_PROVIDER_CURRENCY", "USD") == string(CurrencyINR) {
		currency = CurrencyINR
	}
	return ProviderConfig{
		Key:      env.GetEnv("DEMO_PROVIDER_KEY_NAME", "demo"),
		Name:     "Demo Provider",
		APIURL:   apiURL,
		APIKey:   env.GetEnv("DEMO_PROVIDER_KEY", ""),
		Enabled:  true,
		Currency: currency,
	}, true
}
