package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lan_relay/internal/config"
	"lan_relay/internal/repository"
	"lan_relay/internal/server"
	"lan_relay/internal/service"
	"lan_relay/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)
	defer func() { _ = appLogger.Sync() }()

	rdb := connectRedis(cfg.Redis, appLogger)
	if rdb != nil {
		defer rdb.Close()
	}

	repos := repository.NewRepositories(rdb, appLogger)
	services := service.NewServices(repos, cfg, appLogger)
	router := server.NewRouter(services, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server",
			"addr", srv.Addr,
			"url", services.Share.BaseURL(nil),
			"address_mode", cfg.Address.Mode,
			"max_upload_size", cfg.Server.MaxUploadSize,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	services.Session.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// relay then runs without upload rate limiting.
func connectRedis(cfg config.RedisConfig, log logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, continuing without rate limiting", "addr", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil
	}
	log.Info("Redis connection established")
	return rdb
}
