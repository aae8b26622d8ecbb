package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tahsinkabir/marketmind/internal/account"
	"github.com/tahsinkabir/marketmind/internal/advisor"
	"github.com/tahsinkabir/marketmind/internal/analytics"
	"github.com/tahsinkabir/marketmind/internal/auth"
	"github.com/tahsinkabir/marketmind/internal/config"
	"github.com/tahsinkabir/marketmind/internal/kv"
	"github.com/tahsinkabir/marketmind/internal/logging"
	"github.com/tahsinkabir/marketmind/internal/metrics"
	"github.com/tahsinkabir/marketmind/internal/middleware"
	"github.com/tahsinkabir/marketmind/internal/storage"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/internal/tracing"
)

// API bundles the services the HTTP handlers dispatch to.
type API struct {
	store   *store.UserRecordStore
	auth    *auth.Service
	account *account.Service
	advisor *advisor.Service
	images  *storage.Storage
	logger  *logging.Logger
	limiter *middleware.RateLimiter
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer("marketmind-api", cfg.Tracing.Endpoint)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize tracing")
		}
		defer closer.Close()
	}

	kvs, err := kv.NewFromConfig(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to record substrate")
	}
	defer kvs.Close()

	recordStore := store.New(kvs)

	model, err := advisor.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.TextModel, cfg.AI.ImageModel)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize model client")
	}

	images, err := storage.New(cfg.Storage)
	if err != nil {
		// Image storage is optional. Generation still works, posts just
		// keep the raw image inline.
		logger.WithError(err).Warn("Image storage unavailable, post images will be returned inline only")
		images = nil
	}

	api := &API{
		store:   recordStore,
		auth:    auth.NewService(recordStore, logger, cfg.Auth.AdminEmail, cfg.Auth.TokenTTL),
		account: account.NewService(recordStore, analytics.NewRandomGenerator(time.Now().UnixNano()), logger),
		advisor: advisor.NewService(model, logger),
		images:  images,
		logger:  logger,
		limiter: middleware.NewRateLimiter(cfg.Auth.RateRPS, cfg.Auth.RateBurst),
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Port)
		go func() {
			logger.WithField("port", cfg.Metrics.Port).Info("Starting metrics server")
			if err := metricsServer.Start(); err != nil {
				logger.ErrorWithErr("Metrics server failed", err)
			}
		}()
	}

	router := setupRouter(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("addr", addr).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.ErrorWithErr("Metrics server shutdown failed", err)
		}
	}

	logger.Info("Server stopped")
}
