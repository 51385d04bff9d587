package router

import (
	"github.com/boostgridhq/BoostGrid/app/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")
	v1.Get("/services", controllers.HandleListServices)
	v1.Post("/orders", controllers.HandlePlaceOrder)
	v1.Get("/orders/:id", controllers.HandleGetOrder)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
