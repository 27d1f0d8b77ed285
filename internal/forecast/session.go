package forecast

import (
	"context"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
)

// Options fixes how a session chooses elements and reports transforms.
type Options struct {
	// Policy applies when the request names no elements.
	Policy domain.ElementPolicy
	// Elements is the list used by domain.PolicyCustom.
	Elements []string
	Observer domain.TransformObserver
}

// Session is one postal code and one forecast window. Coordinates are
// resolved when the session is created; each forecast call queries the feed
// again.
type Session struct {
	request  domain.ForecastRequest
	coords   domain.Coordinates
	window   domain.Window
	elements []string
	fetcher  domain.FeedFetcher
	observer domain.TransformObserver
}

// New validates req and resolves its postal code. An invalid request fails
// with *domain.InvalidInputError before any feed call.
func New(ctx context.Context, resolver domain.CoordinateResolver, fetcher domain.FeedFetcher, req domain.ForecastRequest, opts Options) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	elements, err := selectElements(req, opts)
	if err != nil {
		return nil, err
	}

	coords, err := resolver.ResolveCoordinates(ctx, req.PostalCode)
	if err != nil {
		return nil, err
	}

	return &Session{
		request:  req,
		coords:   coords,
		window:   domain.NewWindow(domain.ReferenceTime(req.ReferenceTime)),
		elements: elements,
		fetcher:  fetcher,
		observer: opts.Observer,
	}, nil
}

// Elements named on the request take precedence over the configured policy.
func selectElements(req domain.ForecastRequest, opts Options) ([]string, error) {
	if len(req.Elements) > 0 {
		return domain.SelectElements(domain.PolicyCustom, req.Elements)
	}
	return domain.SelectElements(opts.Policy, opts.Elements)
}

// Forecast fetches and normalizes the forecast for the session's window.
func (s *Session) Forecast(ctx context.Context) (*domain.NormalizedForecast, error) {
	q, err := domain.BuildQuery(s.coords, s.elements, s.window, domain.ProductTimeSeries)
	if err != nil {
		return nil, err
	}
	doc, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return domain.TransformWithObserver(doc, s.coords, s.observer)
}

// GetSinglePoint returns the forecast rendered in the request's format.
func (s *Session) GetSinglePoint(ctx context.Context) (string, error) {
	f, err := s.Forecast(ctx)
	if err != nil {
		return "", err
	}
	out, err := domain.Serialize(f, s.request.Format)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Session) Coordinates() domain.Coordinates { return s.coords }

func (s *Session) Window() domain.Window { return s.window }

// Elements returns the element codes every forecast call requests.
func (s *Session) Elements() []string {
	return append([]string(nil), s.elements...)
}

func (s *Session) Request() domain.ForecastRequest { return s.request }
