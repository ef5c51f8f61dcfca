package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurantscorer/database"
	"restaurantscorer/internal/cache"
	"restaurantscorer/internal/config"
	"restaurantscorer/internal/microservices/http-api/repository"
	"restaurantscorer/internal/microservices/http-api/router"
	"restaurantscorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// Connect to the database
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var entryCache cache.EntryCache
	if cfg.CacheEnabled() {
		redisCache, err := cache.NewRedisEntryCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			// the store is authoritative, so run uncached
			logger.Warn("Redis unavailable, entry cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			entryCache = redisCache
			logger.Info("Entry cache enabled", "ttl", cfg.CacheTTL)
		}
	}

	repo := repository.NewScoreEntryRepository(db)
	svc := service.NewScoreEntryService(repo, entryCache, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := router.SetupRouter(cfg, svc, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
