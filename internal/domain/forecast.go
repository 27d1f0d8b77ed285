package domain

import (
	"time"
)

// WindowLength is the span of every time-series request.
const WindowLength = time.Hour

// ProductTimeSeries is the feed product used for point forecasts.
const ProductTimeSeries = "time-series"

// Coordinates is a latitude/longitude pair exactly as the feed reported it.
// The strings are not parsed as numbers; a malformed value is passed through.
type Coordinates struct {
	Latitude  string `json:"lat"`
	Longitude string `json:"lon"`
}

// LatLon renders the pair as "<lat>,<lon>".
func (c Coordinates) LatLon() string {
	return c.Latitude + "," + c.Longitude
}

// Window is the half-open interval [Begin, End) a forecast covers.
type Window struct {
	Begin time.Time
	End   time.Time
}

// NewWindow returns the one-hour window starting at t.
func NewWindow(t time.Time) Window {
	return Window{Begin: t, End: t.Add(WindowLength)}
}

// ReferenceTime converts a unix timestamp into the window start. Zero means
// "now" according to the package clock.
func ReferenceTime(unix int64) time.Time {
	if unix == 0 {
		return clock.Now().UTC().Truncate(time.Second)
	}
	return time.Unix(unix, 0).UTC()
}

// ForecastRecord is one served forecast as handed to a sink.
type ForecastRecord struct {
	PostalCode  string
	Coordinates Coordinates
	Format      Format
	Window      Window
	Payload     []byte
}
