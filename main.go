package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"availability-calendar/api"
	"availability-calendar/config"
	"availability-calendar/database"
	"availability-calendar/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	appLog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal("build logger: ", err)
	}
	defer func() { _ = appLog.Sync() }()

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, appLog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLog.Info("connecting to database")
	db, err := database.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer db.Close()
	appLog.Info("successfully connected to database")

	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		appLog.Info("schema is up to date")
	}

	service := api.NewAPI(db, appLog,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithAllowedOrigins(cfg.AllowedOrigins()),
	)
	service.RegisterRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: service.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		appLog.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	appLog.Info("server stopped")
	return nil
}
