package forecast

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/couchcryptid/ndfd-forecast-service/internal/observability"
)

// Publisher hands a served forecast to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, rec domain.ForecastRecord) error
}

// Service runs one Session per request and tracks feed health.
type Service struct {
	resolver  domain.CoordinateResolver
	fetcher   domain.FeedFetcher
	publisher Publisher
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	feedDown  atomic.Bool
}

// NewService creates a Service. publisher may be nil.
func NewService(resolver domain.CoordinateResolver, fetcher domain.FeedFetcher, publisher Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if opts.Observer == nil {
		opts.Observer = metrics
	}
	return &Service{
		resolver:  resolver,
		fetcher:   fetcher,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports an error while the most recent feed call failed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.feedDown.Load() {
		return errors.New("last ndfd feed call failed")
	}
	return nil
}

// Get serves one forecast request end to end.
func (s *Service) Get(ctx context.Context, req domain.ForecastRequest) (string, error) {
	session, err := New(ctx, s.resolver, s.fetcher, req, s.opts)
	if err != nil {
		s.record(req, err)
		return "", err
	}

	out, err := session.GetSinglePoint(ctx)
	s.record(req, err)
	if err != nil {
		return "", err
	}

	s.publish(ctx, session, out)
	return out, nil
}

func (s *Service) record(req domain.ForecastRequest, err error) {
	outcome := outcomeOf(err)
	s.metrics.Forecasts.WithLabelValues(req.Format.String(), outcome).Inc()

	switch {
	case errors.Is(err, domain.ErrUpstream):
		s.feedDown.Store(true)
		s.logger.Warn("forecast failed", "postal_code", req.PostalCode, "error", err)
	case errors.Is(err, domain.ErrInvalidInput):
		s.logger.Debug("forecast rejected", "postal_code", req.PostalCode, "error", err)
	case err == nil || errors.Is(err, domain.ErrNotImplemented):
		// The feed answered in both cases.
		s.feedDown.Store(false)
		if err != nil {
			s.logger.Debug("forecast format unavailable", "format", req.Format.String())
		}
	default:
		s.logger.Error("forecast failed", "postal_code", req.PostalCode, "error", err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, domain.ErrNotImplemented):
		return "not_implemented"
	default:
		return "error"
	}
}

// publish never fails the request; sink errors are logged and counted.
func (s *Service) publish(ctx context.Context, session *Session, out string) {
	if s.publisher == nil {
		return
	}
	req := session.Request()
	rec := domain.ForecastRecord{
		PostalCode:  req.PostalCode,
		Coordinates: session.Coordinates(),
		Format:      req.Format,
		Window:      session.Window(),
		Payload:     []byte(out),
	}
	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Error("publish forecast failed", "postal_code", req.PostalCode, "error", err)
		return
	}
	s.metrics.ForecastsPublished.Inc()
}
