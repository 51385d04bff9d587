package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boostgridhq/BoostGrid/internal/pkg/panelconfig"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

var serviceCatalog *panelconfig.Catalog

// InitializeServiceController wires the storefront catalog dependency.
func InitializeServiceController(catalog *panelconfig.Catalog) {
	serviceCatalog = catalog
}

// storefrontService is the public projection of a catalog entry. The opaque
// raw payload stays admin-only.
type storefrontService struct {
	ID          string   `json:"id"`
	Platform    string   `json:"platform"`
	Type        string   `json:"type"`
	Variant     string   `json:"variant"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	RatePer1000 float64  `json:"ratePer1000"`
	Min         int      `json:"min"`
	Max         int      `json:"max"`
	Refill      bool     `json:"refill"`
	Dripfeed    bool     `json:"dripfeed"`
	Cancel      bool     `json:"cancel"`
	AverageTime *float64 `json:"averageTime"`
}

func storefrontView(svc smmprovider.Service) storefrontService {
	name := svc.DisplayName
	if name == "" {
		name = svc.ProviderName
	}
	return storefrontService{
		ID:          svc.ID,
		Platform:    string(svc.Platform),
		Type:        string(svc.Type),
		Variant:     string(svc.Variant),
		Name:        name,
		Category:    svc.Category,
		RatePer1000: svc.RatePer1000,
		Min:         svc.Min,
		Max:         svc.Max,
		Refill:      svc.Refill,
		Dripfeed:    svc.Dripfeed,
		Cancel:      svc.Cancel,
		AverageTime: svc.AverageTime,
	}
}

// HandleListServices returns the final catalog, optionally filtered by
// platform and type query parameters.
func HandleListServices(c *fiber.Ctx) error {
	platform := c.Query("platform")
	serviceType := c.Query("type")

	services := serviceCatalog.Services(c.Context())
	out := make([]storefrontService, 0, len(services))
	for _, svc := range services {
		if platform != "" && string(svc.Platform) != platform {
			continue
		}
		if serviceType != "" && string(svc.Type) != serviceType {
			continue
		}
		out = append(out, storefrontView(svc))
	}

	return c.JSON(fiber.Map{
		"count":    len(out),
		"services": out,
	})
}
