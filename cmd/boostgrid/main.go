package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/boostgridhq/BoostGrid/app/controllers"
	"github.com/boostgridhq/BoostGrid/app/repository"
	"github.com/boostgridhq/BoostGrid/internal/pkg/cache"
	"github.com/boostgridhq/BoostGrid/internal/pkg/database"
	"github.com/boostgridhq/BoostGrid/internal/pkg/env"
	"github.com/boostgridhq/BoostGrid/internal/pkg/fx"
	"github.com/boostgridhq/BoostGrid/internal/pkg/panelconfig"
	"github.com/boostgridhq/BoostGrid/internal/pkg/router"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	store := cache.FromEnv()
	settings := repository.GetGlobalFactory().GetSettingRepository()

	registry := smmprovider.NewRegistry(settings)
	fetcher := smmprovider.NewPanelFetcherFromEnv()
	resolver := fx.NewResolver(store)
	aggregator := smmprovider.NewAggregator(registry, fetcher, resolver, store)

	configStore := panelconfig.NewStore(settings)
	catalog := panelconfig.NewCatalog(aggregator, configStore, store)

	controllers.InitializeServiceController(catalog)
	controllers.InitializeOrderController(repository.GetGlobalFactory().GetOrderRepository(), smmprovider.NoopSubmitter{})
	controllers.InitializeAdminProviderController(registry, store)
	controllers.InitializeAdminConfigController(configStore, aggregator)

	// init fiber app
	app := fiber.New(fiber.Config{})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
