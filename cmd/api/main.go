package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"wanderstay-notify/internal/config"
	"wanderstay-notify/internal/handler"
	"wanderstay-notify/internal/middleware"
	"wanderstay-notify/internal/realtime"
	"wanderstay-notify/internal/repository"
	"wanderstay-notify/internal/service"
	"wanderstay-notify/internal/service/notification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (unread counts will not be cached)", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	registry := realtime.NewRegistry(cfg.BroadcastTimeout)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, registry, cfg)
	handlers := handler.NewHandlers(services, cfg)
	wsHandler := realtime.NewHandler(registry, services.Notification)

	go runPurgeLoop(services.Notification, cfg.PurgeInterval)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, wsHandler, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, ws *realtime.Handler, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	protected := v1.Group("", middleware.AuthRequired(cfg.JWTSecret))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Dismiss)
	notifications.Post("/test", h.Notification.SendTest)

	preferences := protected.Group("/preferences")
	preferences.Get("/", h.Preference.Get)
	preferences.Put("/", h.Preference.Update)

	app.Use("/ws", middleware.AuthRequired(cfg.JWTSecret), ws.Upgrade)
	app.Get("/ws", ws.Serve())
}

// runPurgeLoop sweeps expired notifications out-of-band. Each sweep is
// independent, so an interrupted run just leaves work for the next tick.
func runPurgeLoop(svc notification.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		purged, err := svc.PurgeExpired(ctx)
		cancel()
		if err != nil {
			log.Printf("purge: sweep failed: %v", err)
			continue
		}
		if purged > 0 {
			log.Printf("purge: removed %d expired notifications", purged)
		}
	}
}
