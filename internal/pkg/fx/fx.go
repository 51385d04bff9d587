package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/internal/pkg/cache"
)

const (
	CacheKeyUsdInr = "fx:usd_inr:v1"
	cacheTTL       = 5 * time.Minute

	// FallbackUsdToInr is the last-resort rate when every external source
	// fails. A stale-but-reasonable number beats an empty storefront.
	FallbackUsdToInr = 83.0
)

// Source is one external USD-INR rate endpoint with its response decoder.
type Source struct {
	Name  string
	URL   string
	Parse func(body []byte) (float64, error)
}

// DefaultSources are tried in order; the first valid responder wins.
func DefaultSources() []Source {
	return []Source{
		{
			Name: "open.er-api.com",
			URL:  "https://open.er-api.com/v6/latest/USD",
			Parse: func(body []byte) (float64, error) {
				var out struct {
					Rates map[string]float64 `json:"rates"`
				}
				if err := json.Unmarshal(body, &out); err != nil {
					return 0, err
				}
				rate, ok := out.Rates["INR"]
				if !ok {
					return 0, errors.New("response missing INR rate")
				}
				return rate, nil
			},
		},
		{
			Name: "currency-api",
			URL:  "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/usd.json",
			Parse: func(body []byte) (float64, error) {
				var out struct {
					USD map[string]float64 `json:"usd"`
				}
				if err := json.Unmarshal(body, &out); err != nil {
					return 0, err
				}
				rate, ok := out.USD["inr"]
				if !ok {
					return 0, errors.New("response missing inr rate")
				}
				return rate, nil
			},
		},
	}
}

// Resolver fetches and caches the USD-INR exchange rate. UsdToInr never
// fails: cached value, then each source in order, then the hardcoded
// fallback.
type Resolver struct {
	store   cache.Store
	client  *http.Client
	sources []Source
}

func NewResolver(store cache.Store) *Resolver {
	return &Resolver{
		store:   store,
		client:  &http.Client{Timeout: 10 * time.Second},
		sources: DefaultSources(),
	}
}

// NewResolverWithSources is used by tests and deployments with their own
// rate endpoints.
func NewResolverWithSources(store cache.Store, client *http.Client, sources []Source) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{store: store, client: client, sources: sources}
}

// UsdToInr returns a positive finite USD-INR rate, rounded to 2 decimal
// places, preferring the cached value over network calls.
func (r *Resolver) UsdToInr(ctx context.Context) float64 {
	if cached, ok := r.store.Get(CacheKeyUsdInr); ok {
		if rate, err := strconv.ParseFloat(cached, 64); err == nil && validRate(rate) {
			return rate
		}
	}

	for _, source := range r.sources {
		rate, err := r.fetch(ctx, source)
		if err != nil {
			log.Warnf("fx source %s failed: %v", source.Name, err)
			continue
		}
		if !validRate(rate) {
			log.Warnf("fx source %s returned unusable rate %v", source.Name, rate)
			continue
		}
		rate = math.Round(rate*100) / 100
		if err := r.store.Set(CacheKeyUsdInr, strconv.FormatFloat(rate, 'f', -1, 64), cacheTTL); err != nil {
			log.Warnf("failed to cache fx rate: %v", err)
		}
		return rate
	}

	log.Warn("all fx sources failed, using fallback USD-INR rate")
	return FallbackUsdToInr
}

func (r *Resolver) fetch(ctx context.Context, source Source) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("rate request failed: status=%d", resp.StatusCode)
	}
	return source.Parse(body)
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
