package domain

import (
	"net/url"
	"time"
)

// isoLayout writes UTC as +00:00 rather than Z, the form the feed documents.
const isoLayout = "2006-01-02T15:04:05-07:00"

// FormatISO8601 renders t in UTC with an explicit +00:00 offset.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// BuildQuery assembles the parameters of a forecast request. Every element
// code is sent as code=code, which is how the feed selects elements. An empty
// product defaults to the time-series product.
func BuildQuery(coords Coordinates, elements []string, window Window, product string) (url.Values, error) {
	if product == "" {
		product = ProductTimeSeries
	}

	q := make(url.Values, len(elements)+5)
	for _, code := range elements {
		if _, ok := LookupElement(code); !ok {
			return nil, &InvalidInputError{Field: "elements", Message: "unknown element code " + code}
		}
		q.Set(code, code)
	}

	q.Set("lat", coords.Latitude)
	q.Set("lon", coords.Longitude)
	q.Set("product", product)
	q.Set("begin", FormatISO8601(window.Begin))
	q.Set("end", FormatISO8601(window.End))
	return q, nil
}

// LocationQuery is the location-lookup request for one postal code.
func LocationQuery(postalCode string) url.Values {
	return url.Values{"listZipCodeList": {postalCode}}
}
