package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/clinera/appointment-slots-service/internal/adapters/in/http"
	"github.com/clinera/appointment-slots-service/internal/adapters/in/rabbitmq"
	"github.com/clinera/appointment-slots-service/internal/adapters/out/cache"
	"github.com/clinera/appointment-slots-service/internal/adapters/out/clinicstore"
	"github.com/clinera/appointment-slots-service/internal/adapters/out/logger"
	"github.com/clinera/appointment-slots-service/internal/adapters/out/ratelimit"
	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/ports/out"
	"github.com/clinera/appointment-slots-service/internal/core/services/availability_service"
	"github.com/clinera/appointment-slots-service/internal/core/services/booking_service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewZapLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":          cfg.App.Version,
		"env":              cfg.App.Env,
		"timezone":         cfg.App.Timezone,
		"rabbitmqEnabled":  cfg.RabbitMQ.Enabled,
		"cacheEnabled":     cfg.Cache.Enabled,
		"rateLimitEnabled": cfg.RateLimit.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	clinicAdapter := clinicstore.NewClinicStoreAdapter(cfg, mainLogger.WithModule("ClinicStoreAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		lruAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = lruAdapter
	}

	var rateLimiter out.RateLimiterPort
	if limiter := ratelimit.NewExpirableLimiter(cfg, mainLogger.WithModule("RateLimiter")); limiter != nil {
		rateLimiter = limiter
	}

	availabilityService := availability_service.NewAvailabilityService(
		clinicAdapter,
		cacheAdapter,
		mainLogger,
		cfg,
	)
	bookingService := booking_service.NewBookingService(
		clinicAdapter,
		availabilityService,
		rateLimiter,
		mainLogger,
		cfg,
	)

	router := gin.Default()
	controller := http.NewBookingController(availabilityService, bookingService, cfg)
	controller.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewChangeListener(
			availabilityService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
