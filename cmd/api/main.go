package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardinalbotics/scouting-backend/internal/app"
	"github.com/cardinalbotics/scouting-backend/internal/config"
	"github.com/cardinalbotics/scouting-backend/internal/observability"
	"github.com/cardinalbotics/scouting-backend/internal/platform/logging"
	"github.com/cardinalbotics/scouting-backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	prefetchDone := make(chan struct{})
	if cfg.PrefetchEnabled {
		go func() {
			defer close(prefetchDone)
			runPrefetchLoop(ctx, application.Prefetch, cfg.PrefetchInterval, logger)
		}()
	} else {
		close(prefetchDone)
		logger.Info("prefetch disabled", "reason", "PREFETCH_ENABLED=false")
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}
	<-prefetchDone
	if err := application.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, shutdownTimeout); err != nil {
		logger.Error("stop pprof", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	logger.Info("http server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runPrefetchLoop warms the cache immediately and then on every tick until ctx ends.
func runPrefetchLoop(ctx context.Context, svc *usecase.PrefetchService, interval time.Duration, logger *logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := svc.Warm(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.WarnContext(ctx, "prefetch run failed", "error", err)
		case err == nil:
			logger.InfoContext(ctx, "prefetch run finished",
				"season", result.Season,
				"events", result.EventCount,
				"tasks", result.TaskCount,
				"succeeded", result.SuccessCount,
				"failed", result.FailedCount,
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
