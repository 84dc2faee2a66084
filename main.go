package main

import (
	"context"
	"log"

	"consultancy-backend/cache"
	"consultancy-backend/config"
	"consultancy-backend/database"
	"consultancy-backend/middlewares"
	"consultancy-backend/planner"
	"consultancy-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	// ---- CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key, Stripe-Signature",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
	}))

	// ---- Global rate limiter; counters live in Redis when configured
	limiterCfg := limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("rate limiter falls back to memory: %v", err)
		} else {
			store := cache.NewStorage(rdb, "limiter:")
			defer store.Close()
			limiterCfg.Storage = store
		}
	}
	app.Use(limiter.New(limiterCfg))

	// ---- Plan parser (optional)
	var parser planner.Parser
	if cfg.GeminiAPIKey != "" {
		gp, err := planner.NewGeminiParser(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("plan parser disabled: %v", err)
		} else {
			parser = gp
		}
	}

	// ---- Routes
	routes.Register(app, routes.Options{
		Parser:              parser,
		StripeWebhookSecret: cfg.StripeWebhookSecret,
	})

	// ---- Start
	log.Printf("API server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
