package forecast_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/couchcryptid/ndfd-forecast-service/internal/adapter/ndfd"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockResolver struct {
	coords domain.Coordinates
	err    error
	calls  []string
}

func (m *mockResolver) ResolveCoordinates(_ context.Context, postalCode string) (domain.Coordinates, error) {
	m.calls = append(m.calls, postalCode)
	if m.err != nil {
		return domain.Coordinates{}, m.err
	}
	return m.coords, nil
}

type mockFetcher struct {
	doc    domain.Node
	err    error
	params []url.Values
}

func (m *mockFetcher) Fetch(_ context.Context, params url.Values) (domain.Node, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

type mockPublisher struct {
	records []domain.ForecastRecord
	err     error
}

func (m *mockPublisher) Publish(_ context.Context, rec domain.ForecastRecord) error {
	m.records = append(m.records, rec)
	return m.err
}

// --- fixtures ---

var silverSpring = domain.Coordinates{Latitude: "38.9967", Longitude: "-77.0225"}

const forecastDoc = `<?xml version="1.0"?>
<dwml version="1.0">
  <data>
    <parameters applicable-location="point1">
      <temperature type="maximum" units="Fahrenheit"><name>Daily Maximum Temperature</name><value>72</value></temperature>
      <conditions-icon type="forecast-NWS"><name>Conditions Icons</name><icon-link>http://forecast.weather.gov/images/wtf/sct.jpg</icon-link></conditions-icon>
    </parameters>
  </data>
</dwml>`

const forecastJSON = `{"lat-lon":"38.9967,-77.0225",` +
	`"temperature":{"name":"Daily Maximum Temperature","value":"72","units":"Fahrenheit"},` +
	`"conditions-icon":{"name":"Conditions Icons","icon-link":"http://forecast.weather.gov/images/wtf/sct.jpg"}}`

func parseDoc(t *testing.T, xml string) domain.Node {
	t.Helper()
	doc, err := ndfd.ParseString(xml)
	require.NoError(t, err)
	return doc
}

func newMocks(t *testing.T) (*mockResolver, *mockFetcher) {
	t.Helper()
	return &mockResolver{coords: silverSpring}, &mockFetcher{doc: parseDoc(t, forecastDoc)}
}
