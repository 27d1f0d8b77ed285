package domain

import (
	"strings"
)

// ParseLatLonList extracts the coordinates from a location-lookup response.
// The feed answers a single postal code with a "lat,lon" string in the root's
// latLonList element. Multi-code answers separate pairs with spaces; only the
// first pair is used.
func ParseLatLonList(doc Node) (Coordinates, error) {
	list, ok := doc.Child("latLonList")
	if !ok {
		return Coordinates{}, upstreamf("location lookup", "response has no latLonList")
	}
	text := list.Text()
	if text == "" {
		return Coordinates{}, upstreamf("location lookup", "empty latLonList")
	}

	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return Coordinates{}, upstreamf("location lookup", "malformed coordinate pair %q", text)
	}
	lat := strings.TrimSpace(parts[0])
	lon := strings.TrimSpace(parts[1])
	if f := strings.Fields(lon); len(f) > 1 {
		lon = f[0]
	}
	if lat == "" || lon == "" {
		return Coordinates{}, upstreamf("location lookup", "malformed coordinate pair %q", text)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
