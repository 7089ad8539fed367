package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/config"
	"github.com/example/tavola/internal/database"
	"github.com/example/tavola/internal/handlers"
	"github.com/example/tavola/internal/routes"
	"github.com/example/tavola/internal/services"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.SeedAdmin(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		store = redisStore
	} else {
		store = cache.NewMemory(cfg.CacheTTL)
	}

	storage, err := services.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logo storage")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Tavola Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, store, storage, log)

	log.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("fiber.Listen error")
	}
}
