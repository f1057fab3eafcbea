package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartx/internal/config"
	"smartx/internal/http/handlers"
	applog "smartx/internal/log"
	"smartx/internal/metrics"
	"smartx/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// A medium that cannot even be opened leaves the store memory-only.
	medium, err := store.OpenMedium(cfg.Medium())
	if err != nil {
		applog.StoreEvent{Medium: cfg.DurableMedium}.Warn("store.medium.open.fail", err, map[string]any{"fallback": "memory"})
		medium = nil
	}
	if cl, ok := medium.(io.Closer); ok {
		defer func() { _ = cl.Close() }()
	}

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)
	hybrid := store.NewHybridStore(medium, store.WithMetrics(storeMetrics))
	cache := store.NewCache(hybrid, store.WithCacheMetrics(storeMetrics))
	// warm up so the mode is decided before the first request
	st := cache.Snapshot().Counts()
	log.Printf("[store] mode=%s products=%d users=%d", hybrid.Status().Mode, st.Products, st.Users)

	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(cfg.Env != "production")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.hit", nil, nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	deps := handlers.NewDeps(cache, cfg)
	deps.Register(app)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
