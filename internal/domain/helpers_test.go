package domain_test

import (
	"testing"

	"github.com/couchcryptid/ndfd-forecast-service/internal/adapter/ndfd"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/stretchr/testify/require"
)

var testCoords = domain.Coordinates{Latitude: "38.99", Longitude: "-77.01"}

func mustParse(t *testing.T, xml string) domain.Node {
	t.Helper()
	doc, err := ndfd.ParseString(xml)
	require.NoError(t, err)
	return doc
}

// parameters wraps element XML in a minimal DWML forecast document.
func parameters(elements string) string {
	return `<?xml version="1.0"?>
<dwml version="1.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <data>
    <parameters applicable-location="point1">` + elements + `</parameters>
  </data>
</dwml>`
}

func transformXML(t *testing.T, elements string) *domain.NormalizedForecast {
	t.Helper()
	out, err := domain.Transform(mustParse(t, parameters(elements)), testCoords)
	require.NoError(t, err)
	return out
}

func strPtr(s string) *string { return &s }

// recordingObserver counts TransformObserver callbacks.
type recordingObserver struct {
	transformed map[domain.Shape]int
	skipped     map[domain.Shape][]string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		transformed: make(map[domain.Shape]int),
		skipped:     make(map[domain.Shape][]string),
	}
}

func (r *recordingObserver) ElementTransformed(shape domain.Shape) {
	r.transformed[shape]++
}

func (r *recordingObserver) ElementSkipped(shape domain.Shape, reason string) {
	r.skipped[shape] = append(r.skipped[shape], reason)
}

const fullForecastXML = `<?xml version="1.0"?>
<dwml version="1.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <head>
    <product srsName="WGS 1984" concise-name="time-series" operational-mode="official">
      <title>NOAA's National Weather Service Forecast Data</title>
    </product>
  </head>
  <data>
    <location>
      <location-key>point1</location-key>
      <point latitude="38.99" longitude="-77.01"/>
    </location>
    <time-layout time-coordinate="local" summarization="none">
      <layout-key>k-p24h-n1-1</layout-key>
      <start-valid-time>2024-01-10T07:00:00-05:00</start-valid-time>
    </time-layout>
    <parameters applicable-location="point1">
      <temperature type="maximum" units="Fahrenheit" time-layout="k-p24h-n1-1">
        <name>Daily Maximum Temperature</name>
        <value>72</value>
      </temperature>
      <probability-of-precipitation type="12 hour" units="percent" time-layout="k-p12h-n1-3">
        <name>12 Hourly Probability of Precipitation</name>
        <value>20</value>
      </probability-of-precipitation>
      <temperature type="minimum" units="Fahrenheit" time-layout="k-p24h-n1-2">
        <name>Daily Minimum Temperature</name>
        <value>55</value>
      </temperature>
      <convective-hazard time-layout="k-p24h-n1-5">
        <outlook>
          <name>Convective Hazard Outlook</name>
          <value>no thunderstorms</value>
        </outlook>
      </convective-hazard>
      <convective-hazard time-layout="k-p24h-n1-5">
        <severe-component type="tornadoes" units="percent">
          <name>Probability of Tornadoes</name>
          <value>5</value>
        </severe-component>
      </convective-hazard>
      <convective-hazard time-layout="k-p24h-n1-5">
        <severe-component type="hail" units="percent">
          <name>Probability of Hail</name>
          <value>15</value>
        </severe-component>
      </convective-hazard>
      <climate-anomaly>
        <weekly type="average temperature above normal" units="percent" time-layout="k-p1w-n1-6">
          <name>Probability of 8- To 14-Day Average Temperature Above Normal</name>
          <value>40</value>
        </weekly>
      </climate-anomaly>
      <climate-anomaly>
        <monthly type="average temperature above normal" units="percent" time-layout="k-p1m-n1-7">
          <name>Probability of One-Month Average Temperature Above Normal</name>
          <value>33</value>
        </monthly>
      </climate-anomaly>
      <hazards time-layout="k-p1h-n1-4">
        <name>Watches, Warnings, and Advisories</name>
        <hazard-conditions>
          <hazard hazardCode="WS.W" phenomena="Winter Storm" significance="Warning" hazardType="long duration">
            <hazardTextURL>http://forecast.weather.gov/wwamap/wwatxtget.php?cwa=usa&amp;wwa=Winter%20Storm%20Warning</hazardTextURL>
            <hazardIcon>http://forecast.weather.gov/images/wtf/medium/ws.png</hazardIcon>
          </hazard>
        </hazard-conditions>
        <hazard-conditions xsi:nil="true"/>
      </hazards>
      <conditions-icon type="forecast-NWS" time-layout="k-p1h-n1-4">
        <name>Conditions Icons</name>
        <icon-link>http://forecast.weather.gov/images/wtf/sct.jpg</icon-link>
      </conditions-icon>
      <weather time-layout="k-p1h-n1-4">
        <name>Weather Type, Coverage, and Intensity</name>
        <weather-conditions/>
      </weather>
    </parameters>
  </data>
</dwml>`
