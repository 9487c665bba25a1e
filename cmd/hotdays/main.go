// Command hotdays serves the tmax hot-days dashboard API. It loads the
// configured CSV source, keeps it fresh on a cron schedule, and optionally
// publishes per-station hot-day summaries to Kafka after every refresh.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/tmax-hotdays-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/tmax-hotdays-service/internal/adapter/kafka"
	"github.com/couchcryptid/tmax-hotdays-service/internal/adapter/mapbox"
	"github.com/couchcryptid/tmax-hotdays-service/internal/adapter/source"
	"github.com/couchcryptid/tmax-hotdays-service/internal/config"
	"github.com/couchcryptid/tmax-hotdays-service/internal/dashboard"
	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/couchcryptid/tmax-hotdays-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := source.NewFetcher(source.FetchConfig{
		Timeout:        cfg.SourceTimeout,
		MaxRetries:     cfg.SourceMaxRetries,
		RetryDelay:     500 * time.Millisecond,
		BreakerTimeout: time.Minute,
	}, logger)
	loader := source.NewLoader(cfg.SourceURL, fetcher, logger)

	// Station naming falls back to the built-in gazetteer when Mapbox is off.
	var resolver domain.NameResolver
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		resolver = mapbox.NewCachedResolver(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var (
		publisher dashboard.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka summaries enabled", "topic", cfg.KafkaSummaryTopic, "brokers", cfg.KafkaBrokers)
	}

	svc := dashboard.New(loader, resolver, publisher, dashboard.Options{
		AlertThreshold:  cfg.AlertThreshold,
		RefreshSchedule: cfg.RefreshSchedule,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start refresh loop.
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := svc.Run(ctx); err != nil {
			logger.Error("dashboard service error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", "source", loader.Location())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	select {
	case <-runDone:
	case <-shutdownCtx.Done():
		logger.Warn("refresh still running at shutdown deadline")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
