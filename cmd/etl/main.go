package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto-insights/internal/config"
	"resto-insights/internal/database"
	"resto-insights/internal/dataset"
	"resto-insights/internal/export"
	"resto-insights/internal/handler"
	"resto-insights/internal/repository"
	"resto-insights/internal/router"
	"resto-insights/internal/service"
	"resto-insights/internal/transform"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "ingest"
	if len(args) > 0 {
		command = args[0]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("command", command).Msg("starting resto-insights")

	// Cancel on interrupt so a long ingest or serve can shut down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	ingestRepo := repository.NewIngestRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Initialize services
	ingestService := service.NewIngestService(newLoader(ctx, cfg, logger), transform.NewCleaner(cfg.Dataset.TargetCountryCode, logger), ingestRepo, logger)
	writer := export.NewWriter(cfg.Dataset.OutputDir, logger)
	reportService := service.NewReportService(reportRepo, writer, logger)

	switch command {
	case "migrate":
		return ingestService.Migrate(ctx)

	case "ingest":
		if err := ingestService.Migrate(ctx); err != nil {
			return err
		}
		result, err := ingestService.Run(ctx, cfg.Dataset.Path)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		logger.Info().
			Str("run_id", result.RunID.String()).
			Int("rows_ingested", result.RowsIngested).
			Msg("ingest finished")
		return nil

	case "report":
		paths, err := reportService.ExportAll(ctx)
		if err != nil {
			return fmt.Errorf("report export failed: %w", err)
		}
		for _, path := range paths {
			fmt.Println(path)
		}
		return nil

	case "serve":
		if cfg.Auth.APIKey == "" {
			return fmt.Errorf("API_KEY is required for serve")
		}
		reportHandler := handler.NewReportHandler(reportService, logger)
		mux := router.New(reportHandler, cfg.Auth.APIKey, logger)
		return serve(ctx, cfg.Server, mux, logger)

	default:
		return fmt.Errorf("unknown command %q (expected ingest, report, serve, or migrate)", command)
	}
}

// serve runs the report API until the context is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, cfg config.ServerConfig, mux http.Handler, logger zerolog.Logger) error {
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Address()).
			Msg("report API server started")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

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

// newLoader builds the dataset loader, preferring S3 with a local fallback
// when S3 is enabled.
func newLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) dataset.Loader {
	fileLoader := dataset.NewFileLoader(logger)

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for dataset files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := dataset.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return dataset.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
