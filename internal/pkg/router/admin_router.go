package router

import (
	"github.com/boostgridhq/BoostGrid/app/controllers"
	"github.com/boostgridhq/BoostGrid/internal/pkg/env"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

type AdminRouter struct {
}

// InstallRouter registers the admin back-office API. The real deployment
// sits behind the panel's session auth; basic auth is the standalone guard.
func (h AdminRouter) InstallRouter(app *fiber.App) {
	adminGroup := app.Group("/admin/api", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("ADMIN_USER", "admin"): env.GetEnv("ADMIN_PASSWORD", "admin"),
		},
	}))

	// Provider registry
	adminGroup.Get("/providers", controllers.HandleAdminListProviders)
	adminGroup.Put("/providers", controllers.HandleAdminUpsertProvider)
	adminGroup.Delete("/providers/:key", controllers.HandleAdminRemoveProvider)

	// Panel config (strict mode, margins, overrides)
	adminGroup.Get("/panel-config", controllers.HandleAdminGetPanelConfig)
	adminGroup.Put("/panel-config", controllers.HandleAdminPutPanelConfig)

	// Pre-override catalog with raw payloads for debugging
	adminGroup.Get("/raw-services", controllers.HandleAdminRawServices)
}

func NewAdminRouter() *AdminRouter {
	return &AdminRouter{}
}
