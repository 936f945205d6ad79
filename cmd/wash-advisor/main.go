package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/wash-advisor/internal/api/http"
	"github.com/i474232898/wash-advisor/internal/config"
	"github.com/i474232898/wash-advisor/internal/log"
	"github.com/i474232898/wash-advisor/internal/scheduler"
	"github.com/i474232898/wash-advisor/internal/store"
	"github.com/i474232898/wash-advisor/internal/timezone"
	"github.com/i474232898/wash-advisor/internal/wash"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := log.Init(log.Options{
		Debug:      cfg.LogDebug,
		Dir:        cfg.LogDir,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}); err != nil {
		panic(err)
	}
	defer log.Sync()

	// Timezone lookups are memoized in memory with configured retention.
	zoneCache := store.NewMemoryStore(cfg.ZoneCacheMaxEntries, cfg.ZoneCacheMaxAge)

	finder, err := timezone.NewFinder()
	if err != nil {
		log.Fatalf("failed to load timezone finder: %v", err)
	}
	resolver := timezone.NewCachedResolver(finder, zoneCache)

	formatter, err := timezone.NewLocaleFormatter(cfg.Locale)
	if err != nil {
		log.Fatalf("invalid locale: %v", err)
	}
	converter := timezone.NewConverter(resolver, formatter, "")

	settings := wash.DefaultSettings()
	settings.MergeGap = cfg.MergeGap
	composer := wash.NewComposer(converter, wash.WithSettings(settings))

	// Scheduler that periodically prunes the zone cache.
	sched := scheduler.New(zoneCache, cfg.CachePruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "wash-advisor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// API routes.
	advisor := httpapi.NewAdvisor(composer, converter, resolver)
	httpapi.RegisterRoutes(app, advisor, httpapi.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	go func() {
		log.Infow("listening", "port", cfg.Port, "locale", cfg.Locale)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
