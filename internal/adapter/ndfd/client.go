package ndfd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/couchcryptid/ndfd-forecast-service/internal/observability"
)

const (
	endpointLocation = "location"
	endpointForecast = "forecast"
)

// Client talks to the NDFD REST feed. It implements domain.CoordinateResolver
// and domain.FeedFetcher. Every call is a single GET; failures are returned
// as *domain.UpstreamError and never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NDFD feed client.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		metrics:   metrics,
		logger:    logger,
	}
}

// ResolveCoordinates looks up the coordinates of a 5-digit postal code.
// Malformed codes fail before any request is made.
func (c *Client) ResolveCoordinates(ctx context.Context, postalCode string) (domain.Coordinates, error) {
	if err := domain.ValidatePostalCode(postalCode); err != nil {
		return domain.Coordinates{}, err
	}

	doc, err := c.get(ctx, endpointLocation, domain.LocationQuery(postalCode))
	if err != nil {
		return domain.Coordinates{}, err
	}

	coords, err := domain.ParseLatLonList(doc)
	if err != nil {
		return domain.Coordinates{}, err
	}
	c.logger.Debug("resolved postal code", "postal_code", postalCode, "lat", coords.Latitude, "lon", coords.Longitude)
	return coords, nil
}

// Fetch requests a forecast document for the given query.
func (c *Client) Fetch(ctx context.Context, params url.Values) (domain.Node, error) {
	return c.get(ctx, endpointForecast, params)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (domain.Node, error) {
	start := time.Now()
	doc, err := c.doRequest(ctx, endpoint, params)
	c.metrics.FeedDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.FeedRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("ndfd request failed", "endpoint", endpoint, "error", err)
		return nil, err
	}
	c.metrics.FeedRequests.WithLabelValues(endpoint, "success").Inc()
	return doc, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (domain.Node, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.UpstreamError{Op: endpoint, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Op: endpoint, Err: err}
	}
	if msg, ok := domain.FeedError(doc); ok {
		return nil, &domain.UpstreamError{Op: endpoint, Err: errors.New(msg)}
	}
	return doc, nil
}
