package domain_test

import (
	"testing"

	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := domain.AllElementCodes()
	assert.Len(t, all, len(domain.Elements()))

	seen := make(map[string]bool)
	for _, code := range all {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
		_, ok := domain.LookupElement(code)
		assert.True(t, ok, code)
	}

	e, ok := domain.LookupElement("wwa")
	require.True(t, ok)
	assert.Equal(t, "Watches, Warnings, and Advisories", e.Label)
	assert.True(t, e.DefaultEnabled)

	_, ok = domain.LookupElement("bogus")
	assert.False(t, ok)
}

func TestDefaultElementCodes(t *testing.T) {
	defaults := domain.DefaultElementCodes()
	assert.NotEmpty(t, defaults)
	assert.Less(t, len(defaults), len(domain.AllElementCodes()))
	assert.Contains(t, defaults, "maxt")
	assert.NotContains(t, defaults, "dew")
}

func TestParseElementPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want domain.ElementPolicy
		ok   bool
	}{
		{"", domain.PolicyEnabled, true},
		{"enabled", domain.PolicyEnabled, true},
		{"all", domain.PolicyAll, true},
		{"custom", domain.PolicyCustom, true},
		{"ALL", "", false},
		{"some", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.ParseElementPolicy(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectElements(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		got, err := domain.SelectElements(domain.PolicyEnabled, []string{"dew"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultElementCodes(), got)
	})

	t.Run("all", func(t *testing.T) {
		got, err := domain.SelectElements(domain.PolicyAll, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.AllElementCodes(), got)
	})

	t.Run("custom is deduplicated and sorted", func(t *testing.T) {
		got, err := domain.SelectElements(domain.PolicyCustom, []string{"wwa", "maxt", "wwa", "dew"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dew", "maxt", "wwa"}, got)
	})

	t.Run("custom requires codes", func(t *testing.T) {
		_, err := domain.SelectElements(domain.PolicyCustom, nil)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("custom rejects unknown code", func(t *testing.T) {
		_, err := domain.SelectElements(domain.PolicyCustom, []string{"maxt", "nope"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "nope")
	})
}
