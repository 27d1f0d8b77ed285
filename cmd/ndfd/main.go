package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/ndfd-forecast-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ndfd-forecast-service/internal/adapter/kafka"
	"github.com/couchcryptid/ndfd-forecast-service/internal/adapter/ndfd"
	"github.com/couchcryptid/ndfd-forecast-service/internal/config"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/couchcryptid/ndfd-forecast-service/internal/forecast"
	"github.com/couchcryptid/ndfd-forecast-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := ndfd.NewClient(cfg.FeedBaseURL, cfg.FeedUserAgent, cfg.FeedTimeout, metrics, logger)

	// Optional forecast sink (feature-flagged via KAFKA_ENABLED).
	var publisher forecast.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.PublishEnabled.Set(1)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	policy, _ := domain.ParseElementPolicy(cfg.ElementPolicy)
	svc := forecast.NewService(client, client, publisher, forecast.Options{
		Policy:   policy,
		Elements: cfg.Elements,
	}, logger, metrics)

	handler := httpadapter.NewForecastHandler(svc, domain.ParseFormat(cfg.OutputFormat), logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, handler, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
