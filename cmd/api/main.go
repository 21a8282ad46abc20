package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk/internal/config"
	"kiosk/internal/database"
	"kiosk/internal/events"
	"kiosk/internal/handler"
	"kiosk/internal/menu"
	"kiosk/internal/receipt"
	"kiosk/internal/repository"
	"kiosk/internal/router"
	"kiosk/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("menu_source", cfg.Menu.Source).Msg("starting kiosk API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The persisted menu cache is optional; without it a restart starts empty.
	var cache menu.CacheRepository
	if cfg.Database.Enabled {
		if err := database.RunMigrations(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		cache = repository.NewMenuCacheRepository(pool, logger)
	} else {
		logger.Info().Msg("menu cache persistence disabled")
	}

	// Menu ingestion: source -> retry and fallback -> normalizer -> store
	source := newMenuSource(ctx, cfg, logger)
	policy := menu.RetryPolicy{
		MaxAttempts:    cfg.Menu.RetryAttempts,
		InitialBackoff: cfg.Menu.RetryBackoff,
		MaxBackoff:     cfg.Menu.RetryMaxWait,
	}
	fetcher := menu.NewResilientSource(source, policy, nil, logger)
	normalizer := menu.NewNormalizer(menu.NewEnricher(cfg.Menu.EnrichSeed), logger)
	store := menu.NewStore(fetcher, normalizer, cache, cfg.Menu.Freshness, logger)

	if err := store.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("starting without persisted menu")
	}
	if err := store.Refresh(ctx, true); err != nil {
		logger.Warn().Err(err).Msg("initial menu fetch failed")
	}

	// Receipt printing
	formatter := receipt.NewFormatter(receipt.Config{
		Width:    cfg.Receipt.Width,
		Header:   cfg.Receipt.Header,
		Footer:   cfg.Receipt.Footer,
		CutLines: cfg.Receipt.CutLines,
	})
	printer, closePrinter, err := newPrinter(cfg.Receipt, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize printer: %w", err)
	}
	defer closePrinter()

	// Order events
	publisher := events.NewNopPublisher()
	if cfg.Events.RabbitMQURL != "" {
		publisher, err = events.NewRabbitPublisher(cfg.Events.RabbitMQURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
	} else {
		logger.Info().Msg("order event publishing disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize services
	menuService := service.NewMenuService(store, logger)
	orderService := service.NewOrderService(store, formatter, printer, publisher, cfg.Session.IdleTimeout, logger)

	// Initialize HTTP handlers
	menuHandler := handler.NewMenuHandler(menuService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(menuHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
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

// newMenuSource builds the configured source. Remote sources fall back to the
// local menu file when they fail.
func newMenuSource(ctx context.Context, cfg *config.Config, logger zerolog.Logger) menu.Source {
	fileSource := menu.NewFileSource(cfg.Menu.File, logger)

	switch cfg.Menu.Source {
	case config.MenuSourceHTTP:
		httpSource := menu.NewHTTPSource(menu.HTTPSourceConfig{
			Endpoint: cfg.Menu.Endpoint,
			Timeout:  cfg.Menu.RequestTimeout,
		}, logger)
		return menu.NewFallbackSource(httpSource, fileSource, logger)

	case config.MenuSourceS3:
		s3Source, err := menu.NewS3Source(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Key, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 menu source, falling back to local file only")
			return fileSource
		}
		return menu.NewFallbackSource(s3Source, fileSource, logger)

	default:
		logger.Info().Str("path", cfg.Menu.File).Msg("using local menu file")
		return fileSource
	}
}

// newPrinter opens the configured printer output. The returned func releases it.
func newPrinter(cfg config.ReceiptConfig, logger zerolog.Logger) (receipt.Printer, func(), error) {
	if !cfg.PrinterEnabled {
		logger.Info().Msg("receipt printer disabled")
		return receipt.NewDisabledPrinter(), func() {}, nil
	}

	var out io.Writer
	release := func() {}

	switch cfg.PrinterOutput {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.PrinterOutput, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open printer output %s: %w", cfg.PrinterOutput, err)
		}
		out = f
		release = func() {
			if err := f.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close printer output")
			}
		}
	}

	return receipt.NewWriterPrinter(out, logger), release, nil
}
