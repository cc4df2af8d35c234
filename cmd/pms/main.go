package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/app"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/observability"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/platform/cache"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables"
	receivableshttp "github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables/http"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var resultCache *receivables.Cache
	var enqueuer receivableshttp.WarmupEnqueuer
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, running without result cache", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		resultCache = receivables.NewCache(redisClient, cfg.CacheTTL)
		if err := resultCache.ListenForInvalidation(ctx, ""); err != nil {
			logger.Warn("cache invalidation listener", slog.Any("error", err))
		}

		jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("job client unavailable", slog.Any("error", err))
		} else {
			defer func() {
				if err := jobClient.Close(); err != nil {
					logger.Warn("job client close", slog.Any("error", err))
				}
			}()
			enqueuer = jobClient
		}
	}

	store := receivables.NewSnapshotStore()
	service := receivables.NewService(store, cfg.Thresholds(), resultCache, logger).
		WithTrendWindow(cfg.TrendWindowDays)

	metrics := observability.NewMetrics()
	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Metrics:            metrics,
		ReceivablesHandler: receivableshttp.NewHandler(logger, service, enqueuer),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
