package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boostgridhq/BoostGrid/internal/pkg/panelconfig"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

var (
	panelConfigStore *panelconfig.Store
	rawAggregator    *smmprovider.Aggregator
)

// InitializeAdminConfigController wires the panel config store and the raw
// aggregator used by the admin debugging view.
func InitializeAdminConfigController(store *panelconfig.Store, aggregator *smmprovider.Aggregator) {
	panelConfigStore = store
	rawAggregator = aggregator
}

// HandleAdminGetPanelConfig returns the whole panel config document.
func HandleAdminGetPanelConfig(c *fiber.Ctx) error {
	return c.JSON(panelConfigStore.Load())
}

// HandleAdminPutPanelConfig replaces the panel config document and
// invalidates both catalog caches before responding, so the next read is
// guaranteed fresh.
func HandleAdminPutPanelConfig(c *fiber.Ctx) error {
	var cfg panelconfig.Config
	if err := c.BodyParser(&cfg); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if cfg.Overrides == nil {
		cfg.Overrides = []panelconfig.Override{}
	}

	if err := panelConfigStore.Save(cfg); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	invalidateCatalogCaches()

	return c.JSON(cfg)
}

// HandleAdminRawServices returns the pre-override catalog including the
// original provider payloads, for admin debugging and override authoring.
func HandleAdminRawServices(c *fiber.Ctx) error {
	services := rawAggregator.RawServices(c.Context())
	return c.JSON(fiber.Map{
		"count":    len(services),
		"services": services,
	})
}
