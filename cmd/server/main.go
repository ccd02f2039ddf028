package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Stock-AI-Report/internal/api"
	"github.com/ndewijer/Stock-AI-Report/internal/config"
	"github.com/ndewijer/Stock-AI-Report/internal/eodhd"
	"github.com/ndewijer/Stock-AI-Report/internal/logging"
	"github.com/ndewijer/Stock-AI-Report/internal/mistral"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
	"github.com/ndewijer/Stock-AI-Report/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	log.DefaultLogger = *logger

	if cfg.EOD.APIKey == "" {
		logger.Warn().Msg("EOD_API_KEY is not set; /api/stock-data will fail")
	}
	if cfg.Mistral.APIKey == "" {
		logger.Warn().Msg("MISTRAL_API_KEY is not set; /api/report will fail")
	}

	// Create provider clients
	httpClient := &http.Client{Timeout: 60 * time.Second}
	eodClient := eodhd.NewClient(cfg.EOD.BaseURL, cfg.EOD.APIKey, httpClient)
	mistralClient := mistral.NewClient(cfg.Mistral.BaseURL, cfg.Mistral.APIKey, cfg.Mistral.Model, httpClient)

	// Create services
	stockDataService := service.NewStockDataService(eodClient, logger)
	reportService := service.NewReportService(mistralClient, logger)
	systemService := service.NewSystemService(stockDataService, reportService)

	// Create router
	router := api.NewRouter(systemService, stockDataService, reportService, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Wait for interrupt signal (or a listener failure) for graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}

	logger.Info().Msg("Server exited")
}
