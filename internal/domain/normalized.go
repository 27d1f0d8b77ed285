package domain

import (
	"bytes"
	"encoding/json"
)

// Value is one entry of a NormalizedForecast. The set of implementations is
// closed: Text, Measurement, IconLink, ComponentGroup, AnomalyGroup and
// *HazardGroup.
type Value interface {
	isValue()
}

// Text is a bare string entry; only lat-lon uses it.
type Text string

// Measurement is the name/value/units triple most feed elements reduce to.
// Units is nil when the element carried no units attribute.
type Measurement struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Units *string `json:"units,omitempty"`
}

// IconLink is a conditions-icon entry.
type IconLink struct {
	Name     string `json:"name"`
	IconLink string `json:"icon-link"`
}

// ComponentGroup holds convective-hazard severe components keyed by type.
type ComponentGroup map[string]Measurement

// AnomalyGroup holds climate anomalies keyed by period element, then type.
type AnomalyGroup map[string]map[string]Measurement

// HazardRecord is one watch, warning or advisory.
type HazardRecord struct {
	HazardCode    string `json:"hazardCode"`
	Phenomena     string `json:"phenomena"`
	Significance  string `json:"significance"`
	HazardType    string `json:"hazardType"`
	HazardTextURL string `json:"hazardTextURL"`
	HazardIcon    string `json:"hazardIcon"`
}

// HazardGroup is the hazards entry: a name plus hazard records grouped by
// condition key, each group in document order.
type HazardGroup struct {
	Name       string
	order      []string
	conditions map[string][]HazardRecord
}

// NewHazardGroup returns an empty group with the given name.
func NewHazardGroup(name string) *HazardGroup {
	return &HazardGroup{Name: name, conditions: make(map[string][]HazardRecord)}
}

// Append adds a record under condition, creating the group on first use.
func (g *HazardGroup) Append(condition string, r HazardRecord) {
	if _, ok := g.conditions[condition]; !ok {
		g.order = append(g.order, condition)
	}
	g.conditions[condition] = append(g.conditions[condition], r)
}

// Records returns the records stored under condition.
func (g *HazardGroup) Records(condition string) []HazardRecord {
	return g.conditions[condition]
}

// ConditionKeys returns condition keys in first-seen order.
func (g *HazardGroup) ConditionKeys() []string {
	return append([]string(nil), g.order...)
}

// MarshalJSON flattens the group to {"name": ..., "<condition>": [...]}.
func (g *HazardGroup) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "name", g.Name); err != nil {
		return nil, err
	}
	for _, cond := range g.order {
		buf.WriteByte(',')
		if err := writeMember(&buf, cond, g.conditions[cond]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (Text) isValue()           {}
func (Measurement) isValue()    {}
func (IconLink) isValue()       {}
func (ComponentGroup) isValue() {}
func (AnomalyGroup) isValue()   {}
func (*HazardGroup) isValue()   {}

// NormalizedForecast is an ordered mapping from output key to Value.
// Setting an existing key replaces the value and moves the key to the end.
type NormalizedForecast struct {
	keys   []string
	values map[string]Value
}

// NewNormalizedForecast returns an empty forecast.
func NewNormalizedForecast() *NormalizedForecast {
	return &NormalizedForecast{values: make(map[string]Value)}
}

// Set stores v under key.
func (f *NormalizedForecast) Set(key string, v Value) {
	if _, ok := f.values[key]; ok {
		for i, k := range f.keys {
			if k == key {
				f.keys = append(f.keys[:i], f.keys[i+1:]...)
				break
			}
		}
	}
	f.keys = append(f.keys, key)
	f.values[key] = v
}

// Get returns the value stored under key.
func (f *NormalizedForecast) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the output keys in order.
func (f *NormalizedForecast) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len returns the number of entries.
func (f *NormalizedForecast) Len() int {
	return len(f.keys)
}

// MarshalJSON encodes the entries as a JSON object in key order.
func (f *NormalizedForecast) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, key, f.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	k, err := encodeJSON(key)
	if err != nil {
		return err
	}
	val, err := encodeJSON(v)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// encodeJSON marshals v without HTML escaping so hazard URLs stay readable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
