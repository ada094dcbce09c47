package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jaggery-store/internal/config"
	"jaggery-store/internal/database"
	"jaggery-store/internal/handler"
	"jaggery-store/internal/repository"
	"jaggery-store/internal/router"
	"jaggery-store/internal/seed"
	"jaggery-store/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting jaggery store API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database connection pool and schema.
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories.
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Demo-product seed source. Falls back to the built-in products when the
	// configured S3 source cannot be initialised.
	var seedSource seed.Source
	switch cfg.Seed.Source {
	case config.SeedSourceFile:
		seedSource = seed.NewFileSource(cfg.Seed.FilePath, logger)
	case config.SeedSourceS3:
		s3Source, err := seed.NewS3Source(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, cfg.Seed.S3Key, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 seed source, falling back to built-in products")
			seedSource = seed.NewStaticSource()
		} else {
			seedSource = s3Source
		}
	default:
		seedSource = seed.NewStaticSource()
	}

	// Services.
	catalogService := service.NewCatalogService(productRepo, seedSource, logger)
	checkoutService := service.NewCheckoutService(orderRepo, productRepo, logger)

	// HTTP handlers.
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	mux := router.New(catalogHandler, checkoutHandler, healthHandler, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
