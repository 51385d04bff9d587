package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/internal/pkg/cache"
	"github.com/boostgridhq/BoostGrid/internal/pkg/panelconfig"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

var (
	providerRegistry *smmprovider.Registry
	catalogCache     cache.Store
)

// InitializeAdminProviderController wires the provider registry and the
// cache store used for write-path invalidation.
func InitializeAdminProviderController(registry *smmprovider.Registry, store cache.Store) {
	providerRegistry = registry
	catalogCache = store
}

// invalidateCatalogCaches drops both catalog cache keys so the next read
// after a config write is guaranteed fresh. Called synchronously before the
// write request is answered.
func invalidateCatalogCaches() {
	if err := catalogCache.Clear(smmprovider.RawCacheKey, panelconfig.FinalCacheKey); err != nil {
		log.Errorf("catalog cache invalidation failed: %v", err)
	}
}

// adminProviderView is a provider config with the credential masked.
type adminProviderView struct {
	Key          string  `json:"key"`
	Name         string  `json:"name,omitempty"`
	APIURL       string  `json:"apiUrl"`
	APIKey       string  `json:"apiKey"`
	Enabled      bool    `json:"enabled"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate,omitempty"`
}

func adminProviderViewOf(p smmprovider.ProviderConfig) adminProviderView {
	return adminProviderView{
		Key:          p.Key,
		Name:         p.Name,
		APIURL:       p.APIURL,
		APIKey:       maskAPIKey(p.APIKey),
		Enabled:      p.Enabled,
		Currency:     string(p.Currency),
		ExchangeRate: p.ExchangeRate,
	}
}

// HandleAdminListProviders returns all configured providers with masked keys.
func HandleAdminListProviders(c *fiber.Ctx) error {
	providers := providerRegistry.Read()
	out := make([]adminProviderView, 0, len(providers))
	for _, p := range providers {
		out = append(out, adminProviderViewOf(p))
	}
	return c.JSON(fiber.Map{"providers": out})
}

// HandleAdminUpsertProvider creates or replaces a provider and invalidates
// the catalog caches.
func HandleAdminUpsertProvider(c *fiber.Ctx) error {
	var p smmprovider.ProviderConfig
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	saved, err := providerRegistry.Upsert(p)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	invalidateCatalogCaches()

	return c.Status(fiber.StatusOK).JSON(adminProviderViewOf(saved))
}

// HandleAdminRemoveProvider deletes a provider by key and invalidates the
// catalog caches.
func HandleAdminRemoveProvider(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Provider key is required")
	}

	if err := providerRegistry.Remove(key); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to remove provider")
	}
	invalidateCatalogCaches()

	return c.JSON(fiber.Map{"removed": key})
}
