package smmprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boostgridhq/BoostGrid/internal/pkg/env"
)

// Fetcher retrieves the raw service listing of one provider. Implementations
// own the wire format; the aggregator only sees RawService rows.
type Fetcher interface {
	Services(ctx context.Context, provider ProviderConfig) ([]RawService, error)
}

// PanelFetcher talks the de-facto standard SMM panel v2 API: a form-encoded
// POST with the API key and action=services, answered by a JSON array.
type PanelFetcher struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewPanelFetcherFromEnv() *PanelFetcher {
	seconds, err := strconv.Atoi(env.GetEnv("PROVIDER_FETCH_TIMEOUT_SECONDS", "8"))
	if err != nil || seconds <= 0 {
		seconds = 8
	}
	timeout := time.Duration(seconds) * time.Second
	return &PanelFetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		Timeout:    timeout,
	}
}

// Services fetches and decodes one provider's listing. Every request runs
// under its own deadline so a stalled upstream cannot hold the whole
// aggregation pass hostage.
func (f *PanelFetcher) Services(ctx context.Context, provider ProviderConfig) ([]RawService, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	form := url.Values{}
	form.Set("key", provider.APIKey)
	form.Set("action", "services")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider %s services request failed: status=%d", provider.Key, resp.StatusCode)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var services []RawService
	if err := decoder.Decode(&services); err != nil {
		return nil, fmt.Errorf("provider %s returned malformed listing: %w", provider.Key, err)
	}
	return services, nil
}
