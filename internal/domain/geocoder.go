package domain

import (
	"context"
	"net/url"
)

// CoordinateResolver turns a postal code into the feed's coordinates.
type CoordinateResolver interface {
	ResolveCoordinates(ctx context.Context, postalCode string) (Coordinates, error)
}

// FeedFetcher issues one forecast request and returns the parsed document.
type FeedFetcher interface {
	Fetch(ctx context.Context, params url.Values) (Node, error)
}
