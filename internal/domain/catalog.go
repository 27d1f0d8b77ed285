package domain

import "sort"

// Element describes one requestable NDFD forecast element.
type Element struct {
	Code           string
	Label          string
	DefaultEnabled bool
}

// catalog is the full set of element codes accepted by the time-series
// product. Order follows the feed's element documentation.
var catalog = []Element{
	{"maxt", "Maximum Temperature", true},
	{"mint", "Minimum Temperature", true},
	{"temp", "3 Hourly Temperature", true},
	{"dew", "Dewpoint Temperature", false},
	{"pop12", "12 Hour Probability of Precipitation", true},
	{"qpf", "Liquid Precipitation Amount", true},
	{"sky", "Cloud Cover Amount", true},
	{"snow", "Snowfall Amount", false},
	{"wspd", "Wind Speed", true},
	{"wdir", "Wind Direction", true},
	{"wx", "Weather", true},
	{"waveh", "Wave Height", false},
	{"icons", "Weather Icons", true},
	{"rh", "Relative Humidity", true},
	{"appt", "Apparent Temperature", true},
	{"incw34", "Probabilistic Tropical Cyclone Wind Speed >34 Knots (Incremental)", false},
	{"incw50", "Probabilistic Tropical Cyclone Wind Speed >50 Knots (Incremental)", false},
	{"incw64", "Probabilistic Tropical Cyclone Wind Speed >64 Knots (Incremental)", false},
	{"cumw34", "Probabilistic Tropical Cyclone Wind Speed >34 Knots (Cumulative)", false},
	{"cumw50", "Probabilistic Tropical Cyclone Wind Speed >50 Knots (Cumulative)", false},
	{"cumw64", "Probabilistic Tropical Cyclone Wind Speed >64 Knots (Cumulative)", false},
	{"critfireo", "Fire Weather from Wind and Relative Humidity", false},
	{"dryfireo", "Fire Weather from Dry Thunderstorms", false},
	{"conhazo", "Convective Hazard Outlook", true},
	{"ptornado", "Probability of Tornadoes", true},
	{"phail", "Probability of Hail", true},
	{"ptstmwinds", "Probability of Damaging Thunderstorm Winds", true},
	{"pxtornado", "Probability of Extreme Tornadoes", true},
	{"pxhail", "Probability of Extreme Hail", true},
	{"pxtstmwinds", "Probability of Extreme Thunderstorm Winds", true},
	{"ptotsvrtstm", "Probability of Severe Thunderstorms", true},
	{"pxtotsvrtstm", "Probability of Extreme Severe Thunderstorms", true},
	{"tmpabv14d", "Probability of 8- To 14-Day Average Temperature Above Normal", false},
	{"tmpblw14d", "Probability of 8- To 14-Day Average Temperature Below Normal", false},
	{"tmpabv30d", "Probability of One-Month Average Temperature Above Normal", false},
	{"tmpblw30d", "Probability of One-Month Average Temperature Below Normal", false},
	{"tmpabv90d", "Probability of Three-Month Average Temperature Above Normal", false},
	{"tmpblw90d", "Probability of Three-Month Average Temperature Below Normal", false},
	{"prcpabv14d", "Probability of 8- To 14-Day Total Precipitation Above Median", false},
	{"prcpblw14d", "Probability of 8- To 14-Day Total Precipitation Below Median", false},
	{"prcpabv30d", "Probability of One-Month Total Precipitation Above Median", false},
	{"prcpblw30d", "Probability of One-Month Total Precipitation Below Median", false},
	{"prcpabv90d", "Probability of Three-Month Total Precipitation Above Median", false},
	{"prcpblw90d", "Probability of Three-Month Total Precipitation Below Median", false},
	{"precipa_r", "Real-time Mesoscale Analysis Precipitation", false},
	{"sky_r", "Real-time Mesoscale Analysis GOES Effective Cloud Amount", false},
	{"td_r", "Real-time Mesoscale Analysis Dewpoint Temperature", false},
	{"temp_r", "Real-time Mesoscale Analysis Temperature", false},
	{"wdir_r", "Real-time Mesoscale Analysis Wind Direction", false},
	{"wspd_r", "Real-time Mesoscale Analysis Wind Speed", false},
	{"wwa", "Watches, Warnings, and Advisories", true},
	{"tstmprb", "Probability of a Thunderstorm", false},
	{"tstmcat", "Thunderstorm Outlook Category", false},
	{"wgust", "Wind Gust", true},
	{"iceaccum", "Ice Accumulation", false},
}

var catalogIndex = func() map[string]Element {
	idx := make(map[string]Element, len(catalog))
	for _, e := range catalog {
		idx[e.Code] = e
	}
	return idx
}()

// LookupElement returns the catalog entry for code.
func LookupElement(code string) (Element, bool) {
	e, ok := catalogIndex[code]
	return e, ok
}

// Elements returns a copy of the catalog in documentation order.
func Elements() []Element {
	out := make([]Element, len(catalog))
	copy(out, catalog)
	return out
}

// AllElementCodes returns every catalog code in documentation order.
func AllElementCodes() []string {
	codes := make([]string, 0, len(catalog))
	for _, e := range catalog {
		codes = append(codes, e.Code)
	}
	return codes
}

// DefaultElementCodes returns the codes flagged as enabled by default.
func DefaultElementCodes() []string {
	var codes []string
	for _, e := range catalog {
		if e.DefaultEnabled {
			codes = append(codes, e.Code)
		}
	}
	return codes
}

// ElementPolicy decides which catalog codes a forecast request asks for.
type ElementPolicy string

const (
	PolicyEnabled ElementPolicy = "enabled"
	PolicyAll     ElementPolicy = "all"
	PolicyCustom  ElementPolicy = "custom"
)

// ParseElementPolicy maps a configuration string to a policy. Empty selects
// PolicyEnabled.
func ParseElementPolicy(s string) (ElementPolicy, bool) {
	switch ElementPolicy(s) {
	case "", PolicyEnabled:
		return PolicyEnabled, true
	case PolicyAll:
		return PolicyAll, true
	case PolicyCustom:
		return PolicyCustom, true
	}
	return "", false
}

// SelectElements applies the policy. Custom lists are validated against the
// catalog, deduplicated, and sorted so the resulting query is stable.
func SelectElements(policy ElementPolicy, custom []string) ([]string, error) {
	switch policy {
	case PolicyAll:
		return AllElementCodes(), nil
	case PolicyCustom:
		if len(custom) == 0 {
			return nil, &InvalidInputError{Field: "elements", Message: "custom element policy requires at least one element code"}
		}
		seen := make(map[string]bool, len(custom))
		codes := make([]string, 0, len(custom))
		for _, c := range custom {
			if _, ok := LookupElement(c); !ok {
				return nil, &InvalidInputError{Field: "elements", Message: "unknown element code " + c}
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			codes = append(codes, c)
		}
		sort.Strings(codes)
		return codes, nil
	default:
		return DefaultElementCodes(), nil
	}
}
