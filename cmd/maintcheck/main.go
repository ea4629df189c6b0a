package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maintcheck/internal/config"
	httpapi "maintcheck/internal/http"
	applogger "maintcheck/internal/logger"
	"maintcheck/internal/observability"
	"maintcheck/internal/repository"
	"maintcheck/internal/service"
	"maintcheck/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := applogger.New(cfg.Log.Level, cfg.Log.Format, "maintcheck")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	kv, cleanup, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}
	defer cleanup()

	devicesRepo := repository.NewDevicesRepository(kv)
	checksRepo := repository.NewChecksRepository(kv)
	plansRepo := repository.NewPlansRepository(kv)
	settingsRepo := repository.NewSettingsRepository(kv)

	notifier := service.NewHTTPNotifier(
		cfg.Notifier.URL,
		cfg.Notifier.Enabled,
		time.Duration(cfg.Notifier.TimeoutSec)*time.Second,
		logger,
	)

	checkService := service.NewCheckService(checksRepo, devicesRepo, plansRepo, logger)
	delayedService := service.NewDelayedService(checksRepo, devicesRepo, settingsRepo, notifier, logger)
	deviceService := service.NewDeviceService(devicesRepo, checksRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterCheckRoutes(httpapi.NewCheckHandler(checkService, delayedService, logger))
	router.RegisterDeviceRoutes(httpapi.NewDeviceHandler(deviceService, logger))
	router.RegisterSettingsRoutes(httpapi.NewSettingsHandler(settingsService, logger))
	router.HandleHandler("/metrics", observability.MetricsHandler())

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      observability.InstrumentHTTP(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("maintcheck listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.Fatal("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Shutdown was not clean", zap.Error(err))
	}
	logger.Info("maintcheck stopped")
}

// buildStore selects the KV backend from config and returns it along
// with its cleanup.
func buildStore(cfg *config.Config, logger *zap.Logger) (store.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		logger.Info("using redis storage", zap.String("addr", cfg.Redis.Addr))
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil
	case "postgres":
		db, err := store.OpenPostgres(cfg.GetDSN(), cfg.Database.MaxConns, cfg.Database.MaxIdle)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres storage", zap.String("host", cfg.Database.Host))
		return pg, func() { _ = db.Close() }, nil
	case "memory":
		logger.Warn("using in-memory storage, state is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
