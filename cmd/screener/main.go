package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohamedkhairy/stock-screener/internal/api"
	"github.com/mohamedkhairy/stock-screener/internal/config"
	"github.com/mohamedkhairy/stock-screener/internal/data"
	"github.com/mohamedkhairy/stock-screener/internal/scoring"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
	"github.com/mohamedkhairy/stock-screener/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting screener service",
		logger.Int("port", cfg.Server.Port),
		logger.String("provider", cfg.Data.Provider),
		logger.Int("max_workers", cfg.Pipeline.MaxWorkers),
	)

	// Initialize data provider
	provider, err := data.NewProvider(cfg.Data.Provider, data.ProviderConfig{Dir: cfg.Data.Dir})
	if err != nil {
		logger.Fatal("Failed to initialize data provider",
			logger.ErrorField(err),
		)
	}

	// The csv and mock providers also serve sentiment and financials
	sentiment, _ := provider.(data.SentimentProvider)
	financials, _ := provider.(data.FinancialsProvider)

	// Build the configured indicator set
	indicators, err := cfg.Indicators.Build()
	if err != nil {
		logger.Fatal("Failed to build indicators",
			logger.ErrorField(err),
		)
	}
	registry := indicator.NewRegistry()
	for _, ind := range indicators {
		if err := registry.Register(ind); err != nil {
			logger.Fatal("Failed to register indicator",
				logger.String("indicator", ind.Name()),
				logger.ErrorField(err),
			)
		}
	}
	logger.Info("Registered indicators",
		logger.Int("count", len(registry.List())),
	)

	// Initialize scoring pipeline
	pipeline := scoring.NewPipeline(cfg.Pipeline.MaxWorkers)

	// Initialize HTTP server
	handler := api.NewScreenerHandler(provider, sentiment, financials, pipeline, registry)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening",
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed",
				logger.ErrorField(err),
			)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info("Shutting down",
		logger.String("signal", sig.String()),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed",
			logger.ErrorField(err),
		)
	}
}
