package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/api"
	"github.com/mohamedkhairy/stock-analysis/internal/config"
	"github.com/mohamedkhairy/stock-analysis/internal/pipeline"
	"github.com/mohamedkhairy/stock-analysis/internal/selection"
	"github.com/mohamedkhairy/stock-analysis/internal/storage"
	"github.com/mohamedkhairy/stock-analysis/pkg/logger"
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

	logger.Info("Starting stock analysis API",
		logger.Int("port", cfg.API.Port),
		logger.String("data_source", cfg.Data.Source),
		logger.Bool("cache_enabled", cfg.Data.CacheEnabled),
		logger.Bool("auth_enabled", cfg.API.JWTSecret != ""),
		logger.Int("rate_limit_rps", cfg.API.RateLimitRPS),
	)

	// Open the record store
	store, err := storage.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open record store",
			logger.ErrorField(err),
		)
	}
	defer store.Close()

	controller := selection.NewController(store)
	handler := api.NewAnalysisHandler(controller, pipeline.New(controller))

	router := api.NewRouter(handler, func(ctx context.Context) error {
		_, err := controller.Categories(ctx)
		return err
	})

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()

	middlewares := api.ChainMiddleware(
		api.CORSMiddleware(),
		api.RequestIDMiddleware(),
		api.ErrorHandlingMiddleware(),
		api.AuthMiddleware(api.NewAuthenticator(cfg.API.JWTSecret)),
		api.RateLimitMiddleware(limiterCtx, cfg.API.RateLimitRPS),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      middlewares(router),
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	go func() {
		logger.Info("Starting HTTP server",
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server",
				logger.ErrorField(err),
			)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info("Shutting down stock analysis API")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down HTTP server",
			logger.ErrorField(err),
		)
	}

	logger.Info("Stock analysis API stopped")
}
