package ndfd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/couchcryptid/ndfd-forecast-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserAgent     = "ndfd-forecast-test/1.0"
	contentTypeXML    = "text/xml; charset=UTF-8"
	headerContentType = "Content-Type"
)

const latLonResponse = `<?xml version='1.0'?>
<dwml version='1.0' xmlns:xsd='http://www.w3.org/2001/XMLSchema' xmlns:xsi='http://www.w3.org/2001/XMLSchema-instance'>
<latLonList>38.9967,-77.0225</latLonList>
</dwml>`

const forecastResponse = `<?xml version="1.0"?>
<dwml version="1.0">
  <data>
    <parameters applicable-location="point1">
      <temperature type="maximum" units="Fahrenheit"><name>Daily Maximum Temperature</name><value>72</value></temperature>
    </parameters>
  </data>
</dwml>`

const errorResponse = `<?xml version='1.0'?>
<error><h2>ERROR</h2><pre>
<problem>No data were found using the following input:</problem>
</pre></error>`

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		userAgent:  testUserAgent,
		metrics:    observability.NewUnregisteredMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func xmlHandler(t *testing.T, body string, check func(*http.Request)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set(headerContentType, contentTypeXML)
		_, err := io.WriteString(w, body)
		assert.NoError(t, err)
	}
}

func TestClient_ResolveCoordinates_Success(t *testing.T) {
	srv := httptest.NewServer(xmlHandler(t, latLonResponse, func(r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "20910", r.URL.Query().Get("listZipCodeList"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "xml")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	coords, err := c.ResolveCoordinates(context.Background(), "20910")
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{Latitude: "38.9967", Longitude: "-77.0225"}, coords)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues(endpointLocation, "success")), 0)
}

func TestClient_ResolveCoordinates_InvalidPostalCodeMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for _, bad := range []string{"abc", "123", "209101"} {
		_, err := c.ResolveCoordinates(context.Background(), bad)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, calls.Load())
}

func TestClient_ResolveCoordinates_MissingLatLonList(t *testing.T) {
	srv := httptest.NewServer(xmlHandler(t, `<dwml version="1.0"/>`, nil))
	defer srv.Close()

	_, err := testClient(srv.URL).ResolveCoordinates(context.Background(), "20910")
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_Fetch_Success(t *testing.T) {
	params := url.Values{"lat": {"38.99"}, "lon": {"-77.01"}, "maxt": {"maxt"}, "product": {"time-series"}}

	srv := httptest.NewServer(xmlHandler(t, forecastResponse, func(r *http.Request) {
		assert.Equal(t, params, r.URL.Query())
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	doc, err := c.Fetch(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "dwml", doc.Name())
	data, ok := doc.Child("data")
	require.True(t, ok)
	_, ok = data.Child("parameters")
	assert.True(t, ok)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues(endpointForecast, "success")), 0)
}

func TestClient_Fetch_KeepsBasePath(t *testing.T) {
	srv := httptest.NewServer(xmlHandler(t, forecastResponse, func(r *http.Request) {
		assert.Equal(t, "/xml/sample_products/browser_interface/ndfdXMLclient.php", r.URL.Path)
	}))
	defer srv.Close()

	c := testClient(srv.URL + "/xml/sample_products/browser_interface/ndfdXMLclient.php")
	_, err := c.Fetch(context.Background(), url.Values{"lat": {"1"}})
	require.NoError(t, err)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		message string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			},
			message: "status 503",
		},
		{
			name: "malformed xml",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, "<dwml><data units=></data></dwml>")
			},
			message: "parse xml",
		},
		{
			name:    "empty body",
			handler: func(http.ResponseWriter, *http.Request) {},
			message: "parse xml",
		},
		{
			name: "feed error document",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, errorResponse)
			},
			message: "No data were found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := testClient(srv.URL)
			_, err := c.Fetch(context.Background(), url.Values{"lat": {"1"}})
			require.ErrorIs(t, err, domain.ErrUpstream)
			assert.Contains(t, err.Error(), tt.message)
			assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues(endpointForecast, "error")), 0)
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Fetch(context.Background(), url.Values{"lat": {"1"}})
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(xmlHandler(t, forecastResponse, nil))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Fetch(ctx, url.Values{"lat": {"1"}})
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://example.gov/feed", testUserAgent, 3*time.Second, observability.NewUnregisteredMetrics(), slog.Default())

	assert.Equal(t, "http://example.gov/feed", c.baseURL)
	assert.Equal(t, testUserAgent, c.userAgent)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}
