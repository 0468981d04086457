package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairwayev/quotedesk-backend/api/routes"
	"github.com/fairwayev/quotedesk-backend/internal/catalog"
	"github.com/fairwayev/quotedesk-backend/internal/cron"
	"github.com/fairwayev/quotedesk-backend/internal/export"
	"github.com/fairwayev/quotedesk-backend/internal/ledger"
	"github.com/fairwayev/quotedesk-backend/internal/lifecycle"
	"github.com/fairwayev/quotedesk-backend/internal/quote"
	sessionsvc "github.com/fairwayev/quotedesk-backend/internal/session"
	"github.com/fairwayev/quotedesk-backend/internal/template"
	"github.com/fairwayev/quotedesk-backend/pkg/auth/session"
	"github.com/fairwayev/quotedesk-backend/pkg/config"
	"github.com/fairwayev/quotedesk-backend/pkg/db"
	"github.com/fairwayev/quotedesk-backend/pkg/logger"
	"github.com/fairwayev/quotedesk-backend/pkg/metrics"
	"github.com/fairwayev/quotedesk-backend/pkg/migrate"
	"github.com/fairwayev/quotedesk-backend/pkg/redis"
)

const lockKeyFormat = "qd:cron:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)
	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := sessionsvc.NewService(sessionManager, cfg.Staff, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	quoteStore, err := quote.NewStore(
		quote.NewRemoteStore(cfg.Remote),
		quote.NewMirror(dbClient.DB()),
		storeMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote store", err)
		os.Exit(1)
	}

	historyService, err := ledger.NewService(ledger.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order history", err)
		os.Exit(1)
	}

	templateService, err := template.NewService(template.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create template service", err)
		os.Exit(1)
	}

	lifecycleController, err := lifecycle.NewController(quoteStore, historyService, templateService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lifecycle controller", err)
		os.Exit(1)
	}

	renderer, err := export.NewHTTPRenderer(cfg.Renderer)
	if err != nil {
		logg.Error(context.Background(), "failed to create renderer", err)
		os.Exit(1)
	}

	exporter, err := export.NewCoordinator(
		quoteStore,
		historyService,
		renderer,
		export.NewHTTPImageLoader(cfg.Renderer.Timeout),
		cfg.Export.ImageWait,
		storeMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create export coordinator", err)
		os.Exit(1)
	}

	catalogProvider, err := catalog.NewProvider(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog provider", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		lock, err := cron.NewRedisLock(redisClient, fmt.Sprintf(lockKeyFormat, cfg.App.Env), 0)
		if err != nil {
			logg.Error(ctx, "failed to create cron lock", err)
			os.Exit(1)
		}
		cronService, err := cron.NewService(cron.ServiceParams{
			Logger:   logg,
			Registry: cron.NewRegistry(cron.NewCatalogRefreshJob(catalogProvider)),
			Lock:     lock,
			Metrics:  jobMetrics,
			Interval: cfg.Catalog.RefreshInterval,
		})
		if err != nil {
			logg.Error(ctx, "failed to create cron service", err)
			os.Exit(1)
		}
		go func() {
			if err := cronService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error(ctx, "cron loop stopped unexpectedly", err)
			}
		}()
	}

	handler := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        dbClient,
		Redis:     redisClient,
		Sessions:  sessionManager,
		Auth:      authService,
		Store:     quoteStore,
		Lifecycle: lifecycleController,
		History:   historyService,
		Exporter:  exporter,
		Catalog:   catalogProvider,
		Template:  templateService,
		Metrics:   promhttp.Handler(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
		}
	}
}
