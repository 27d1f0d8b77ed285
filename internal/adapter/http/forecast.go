package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
)

// ForecastService serves one forecast request.
type ForecastService interface {
	Get(ctx context.Context, req domain.ForecastRequest) (string, error)
}

// ForecastHandler maps GET /v1/forecast/{postalCode} onto a ForecastService.
type ForecastHandler struct {
	service       ForecastService
	defaultFormat domain.Format
	logger        *slog.Logger
}

// NewForecastHandler creates a handler. defaultFormat applies when the
// request has no format parameter.
func NewForecastHandler(svc ForecastService, defaultFormat domain.Format, logger *slog.Logger) *ForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastHandler{service: svc, defaultFormat: defaultFormat, logger: logger}
}

// RegisterRoutes mounts the forecast endpoint.
func (h *ForecastHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{postalCode}", h.HandleGetForecast)
}

// HandleGetForecast handles GET /v1/forecast/{postalCode}?time=&format=&elements=.
func (h *ForecastHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.service.Get(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (h *ForecastHandler) parseRequest(r *http.Request) (domain.ForecastRequest, error) {
	q := r.URL.Query()
	req := domain.ForecastRequest{
		PostalCode: chi.URLParam(r, "postalCode"),
		Format:     h.defaultFormat,
	}

	if ts := q.Get("time"); ts != "" {
		unix, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return req, &domain.InvalidInputError{Field: "time", Message: "must be a unix timestamp in seconds"}
		}
		req.ReferenceTime = unix
	}
	if f := q.Get("format"); f != "" {
		req.Format = domain.ParseFormat(f)
	}
	if e := q.Get("elements"); e != "" {
		for _, code := range strings.Split(e, ",") {
			if code = strings.TrimSpace(code); code != "" {
				req.Elements = append(req.Elements, code)
			}
		}
	}
	return req, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	sharedobs.WriteJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}
