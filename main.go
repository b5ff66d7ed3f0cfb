package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sessiondesk/internal/cache"
	"sessiondesk/internal/config"
	"sessiondesk/internal/database"
	"sessiondesk/internal/handlers"
	"sessiondesk/internal/identity"
	"sessiondesk/internal/logger"
	"sessiondesk/internal/repository"
	"sessiondesk/internal/service"
	"sessiondesk/internal/status"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "sessiondesk")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, zl); err != nil {
		zl.Error("server exited", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

// run serves until SIGINT/SIGTERM or a fatal server error. Returning lets
// deferred cleanup run on every exit path.
func run(cfg config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	// Initialize database
	db, err := database.New(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	checks := []handlers.HealthCheck{{Name: "database", Ping: db.Ping}}

	// Redis is optional; without it every request recomputes
	var clientsCache service.Cache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		store, err := cache.NewRedisStore(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer store.Close()
		clientsCache = store
		checks = append(checks, handlers.HealthCheck{Name: "cache", Ping: store.Ping})
		zl.Info("client cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	repo := repository.NewBookingRepository(db.Conn, zl)
	sessions := service.NewSessionService(repo, cfg.ReferenceOffsetMinutes, status.ExcludeTypes(cfg.ExcludedSessionTypes...), zl)
	clients := service.NewReconciliationService(repo, identity.NewResolver(cfg.PhoneDefaultRegion), clientsCache, zl)

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: handlers.NewRouter(handlers.Options{
			Sessions:   sessions,
			Clients:    clients,
			Checks:     checks,
			CORSOrigin: cfg.CORSOrigin,
			Logger:     zl,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("driver", cfg.DatabaseDriver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
