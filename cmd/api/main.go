package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-favorites/backend/config"
	"github.com/pageza/recipe-favorites/backend/internal/database"
	"github.com/pageza/recipe-favorites/backend/internal/logger"
	"github.com/pageza/recipe-favorites/backend/internal/middleware"
	"github.com/pageza/recipe-favorites/backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}()

	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, favorite writes are not rate limited")
		} else {
			defer client.Close()
			limiter = middleware.NewFavoriteWriteRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow, log)
		}
	}

	srv := server.New(cfg, db, log, limiter)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Error("server error")
			return
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("received signal")
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
		return
	}
	log.Info("server stopped")
}
