package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ksaito/salon-api/internal/config"
	adjustmentHandler "github.com/ksaito/salon-api/internal/handler/adjustment"
	appointmentHandler "github.com/ksaito/salon-api/internal/handler/appointment"
	catalogHandler "github.com/ksaito/salon-api/internal/handler/catalog"
	customerHandler "github.com/ksaito/salon-api/internal/handler/customer"
	historyHandler "github.com/ksaito/salon-api/internal/handler/history"
	settingsHandler "github.com/ksaito/salon-api/internal/handler/settings"
	"github.com/ksaito/salon-api/internal/middleware"
	"github.com/ksaito/salon-api/internal/repository/jsonfile"
	"github.com/ksaito/salon-api/internal/router"
	adjustmentService "github.com/ksaito/salon-api/internal/service/adjustment"
	bookingService "github.com/ksaito/salon-api/internal/service/booking"
	catalogService "github.com/ksaito/salon-api/internal/service/catalog"
	customerService "github.com/ksaito/salon-api/internal/service/customer"
	historyService "github.com/ksaito/salon-api/internal/service/history"
	settingsService "github.com/ksaito/salon-api/internal/service/settings"
	"github.com/ksaito/salon-api/pkg/logger"
	"github.com/ksaito/salon-api/pkg/metrics"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	m := metrics.NewMetrics(cfg.Metrics.Prefix, "core")

	store, err := jsonfile.NewStore(cfg.Storage.DataDir, m)
	if err != nil {
		appLogger.Fatal(err, "failed to open data directory")
	}

	// Repositories
	serviceRepo := jsonfile.NewServiceRepository(store)
	appointmentRepo := jsonfile.NewAppointmentRepository(store)
	customerRepo := jsonfile.NewCustomerRepository(store)
	settingsRepo := jsonfile.NewSettingsRepository(store)

	// Services
	catalogSvc := catalogService.NewService(serviceRepo)
	bookingSvc := bookingService.NewService(appointmentRepo, customerRepo, serviceRepo, m)
	customerSvc := customerService.NewService(customerRepo, appointmentRepo)
	analyzer := historyService.NewAnalyzer(appointmentRepo, serviceRepo)
	settingsSvc := settingsService.NewService(settingsRepo)
	engine := adjustmentService.NewEngine(m)

	// Router
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	routerConfig := router.Config{
		RequestTimeout: cfg.Server.RequestTimeout,
		CORS:           corsConfig,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		MetricsPrefix:  cfg.Metrics.Prefix,
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimitRPS = cfg.RateLimit.RequestsPerSecond
		routerConfig.RateBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(routerConfig,
		catalogHandler.NewHandler(catalogSvc),
		appointmentHandler.NewHandler(bookingSvc),
		customerHandler.NewHandler(customerSvc),
		historyHandler.NewHandler(analyzer),
		adjustmentHandler.NewHandler(engine),
		settingsHandler.NewHandler(settingsSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal(err, "server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
