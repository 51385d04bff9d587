package smmprovider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/boostgridhq/BoostGrid/app/models"
	"github.com/boostgridhq/BoostGrid/app/repository"
)

// Registry reads and writes the configured providers, persisted as a JSON
// document in the settings table. It deliberately does not touch the catalog
// caches; invalidation is the caller's job so storage stays cache-agnostic.
type Registry struct {
	settings repository.SettingRepository
	validate *validator.Validate
}

func NewRegistry(settings repository.SettingRepository) *Registry {
	return &Registry{
		settings: settings,
		validate: validator.New(),
	}
}

// providerDocument is the current persisted shape. Earlier deployments wrote
// a bare array, which Read still accepts.
type providerDocument struct {
	Providers []ProviderConfig `json:"providers"`
}

// Read returns every configured provider. Absent or malformed storage yields
// an empty list, never an error; a panel with no providers is still a
// working panel.
func (r *Registry) Read() []ProviderConfig {
	raw, err := r.settings.GetValue(models.SettingKeyProviders)
	if err != nil {
		log.Warnf("provider registry read failed: %v", err)
		return []ProviderConfig{}
	}
	if strings.TrimSpace(raw) == "" {
		return []ProviderConfig{}
	}

	var doc providerDocument
	if err := json.Unmarshal([]byte(raw), &doc); err == nil && doc.Providers != nil {
		return doc.Providers
	}

	// Legacy shape: a bare array of providers.
	var legacy []ProviderConfig
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil {
		return legacy
	}

	log.Warn("provider registry document is malformed, treating as empty")
	return []ProviderConfig{}
}

// Enabled returns only the providers that participate in aggregation.
func (r *Registry) Enabled() []ProviderConfig {
	all := r.Read()
	enabled := make([]ProviderConfig, 0, len(all))
	for _, p := range all {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Upsert inserts or replaces a provider by key and persists the registry.
// A blank key gets a generated one so service ids stay stable afterwards.
func (r *Registry) Upsert(p ProviderConfig) (ProviderConfig, error) {
	p.Key = strings.TrimSpace(p.Key)
	if p.Key == "" {
		p.Key = "panel-" + uuid.NewString()[:8]
	}
	if p.Currency == "" {
		p.Currency = CurrencyUSD
	}
	if err := r.validate.Struct(p); err != nil {
		return ProviderConfig{}, fmt.Errorf("invalid provider config: %w", err)
	}

	providers := r.Read()
	replaced := false
	for i := range providers {
		if providers[i].Key == p.Key {
			providers[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		providers = append(providers, p)
	}

	if err := r.save(providers); err != nil {
		return ProviderConfig{}, err
	}
	return p, nil
}

// Remove drops a provider by key and persists the registry.
func (r *Registry) Remove(key string) error {
	providers := r.Read()
	kept := make([]ProviderConfig, 0, len(providers))
	for _, p := range providers {
		if p.Key != key {
			kept = append(kept, p)
		}
	}
	return r.save(kept)
}

func (r *Registry) save(providers []ProviderConfig) error {
	data, err := json.Marshal(providerDocument{Providers: providers})
	if err != nil {
		return fmt.Errorf("failed to encode provider registry: %w", err)
	}
	if err := r.settings.SetValue(models.SettingKeyProviders, string(data)); err != nil {
		return fmt.Errorf("failed to persist provider registry: %w", err)
	}
	return nil
}
