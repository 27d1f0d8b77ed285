package domain

import (
	"fmt"
	"strings"
)

// Format selects an output rendering.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "XML"
	default:
		return "JSON"
	}
}

// ParseFormat is case-insensitive. Anything it does not recognize, including
// the empty string, selects JSON.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "XML") {
		return FormatXML
	}
	return FormatJSON
}

type serializer func(*NormalizedForecast) ([]byte, error)

var serializers = map[Format]serializer{
	FormatJSON: serializeJSON,
	FormatXML:  serializeXML,
}

// Serialize renders f in the requested format. Unknown formats use JSON.
// XML is part of the interface but has no renderer and always fails with
// ErrNotImplemented.
func Serialize(f *NormalizedForecast, format Format) ([]byte, error) {
	s, ok := serializers[format]
	if !ok {
		s = serializeJSON
	}
	return s(f)
}

func serializeJSON(f *NormalizedForecast) ([]byte, error) {
	b, err := encodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("serialize forecast: %w", err)
	}
	return b, nil
}

func serializeXML(*NormalizedForecast) ([]byte, error) {
	return nil, fmt.Errorf("xml output: %w", ErrNotImplemented)
}
