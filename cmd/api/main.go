// Package main is the entry point for the Expense Tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Expense Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			if cfg.Server.Environment == "production" {
				slog.Error("Redis connection failed", "error", err)
				os.Exit(1)
			}
			slog.Warn("Redis connection failed, falling back to in-memory state", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Redis:       redisClient,
		HealthCheck: database.HealthCheck,
	})
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	if err := injector.SeedDefaults.Execute(ctx); err != nil {
		slog.Error("Failed to seed default categories", "error", err)
		os.Exit(1)
	}

	var background sync.WaitGroup
	if injector.Worker != nil {
		background.Add(1)
		go func() {
			defer background.Done()
			injector.Worker.Start(ctx)
		}()
	}
	if injector.Scheduler != nil {
		background.Add(1)
		go func() {
			defer background.Done()
			injector.Scheduler.Start(ctx)
		}()
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	background.Wait()

	slog.Info("Server exited properly")
}
