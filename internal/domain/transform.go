package domain

import "strings"

const latLonKey = "lat-lon"

// Element names that need their own extraction rule. Anything else is a
// generic name/value/units element.
const (
	elemConvectiveHazard = "convective-hazard"
	elemClimateAnomaly   = "climate-anomaly"
	elemHazards          = "hazards"
	elemConditionsIcon   = "conditions-icon"
)

// Shape names the extraction rule applied to a feed element.
type Shape string

const (
	ShapeConvectiveHazard Shape = "convective_hazard"
	ShapeClimateAnomaly   Shape = "climate_anomaly"
	ShapeHazards          Shape = "hazards"
	ShapeConditionsIcon   Shape = "conditions_icon"
	ShapeGeneric          Shape = "generic"
)

// TransformObserver receives per-element outcomes. It exists so callers can
// count shapes and skips without the transform depending on a metrics stack.
type TransformObserver interface {
	ElementTransformed(shape Shape)
	ElementSkipped(shape Shape, reason string)
}

type nopObserver struct{}

func (nopObserver) ElementTransformed(Shape)     {}
func (nopObserver) ElementSkipped(Shape, string) {}

// Transform normalizes the first parameter group of a DWML forecast document.
func Transform(doc Node, coords Coordinates) (*NormalizedForecast, error) {
	return TransformWithObserver(doc, coords, nil)
}

// TransformWithObserver is Transform with per-element reporting. A nil
// observer is allowed.
//
// Elements are visited in document order and dispatched on their name. A
// later element whose output key already exists replaces the earlier entry,
// except convective-hazard and climate-anomaly, which accumulate into one
// nested entry each. The lat-lon entry always reflects coords.
func TransformWithObserver(doc Node, coords Coordinates, obs TransformObserver) (*NormalizedForecast, error) {
	params, err := firstParameterGroup(doc)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = nopObserver{}
	}

	out := NewNormalizedForecast()
	out.Set(latLonKey, Text(coords.LatLon()))

	for _, el := range params.Children() {
		switch el.Name() {
		case latLonKey:
			obs.ElementSkipped(ShapeGeneric, "reserved key")
		case elemConvectiveHazard:
			if addConvectiveHazard(out, el) {
				obs.ElementTransformed(ShapeConvectiveHazard)
			} else {
				obs.ElementSkipped(ShapeConvectiveHazard, "empty severe component")
			}
		case elemClimateAnomaly:
			if addClimateAnomaly(out, el) {
				obs.ElementTransformed(ShapeClimateAnomaly)
			} else {
				obs.ElementSkipped(ShapeClimateAnomaly, "no anomaly period")
			}
		case elemHazards:
			out.Set(elemHazards, hazardGroup(el, obs))
			obs.ElementTransformed(ShapeHazards)
		case elemConditionsIcon:
			out.Set(elemConditionsIcon, IconLink{
				Name:     childText(el, "name"),
				IconLink: childText(el, "icon-link"),
			})
			obs.ElementTransformed(ShapeConditionsIcon)
		default:
			out.Set(el.Name(), genericMeasurement(el))
			obs.ElementTransformed(ShapeGeneric)
		}
	}

	return out, nil
}

// FeedError reports whether doc is the feed's error page rather than a
// forecast, and if so returns the message it carries.
func FeedError(doc Node) (string, bool) {
	if doc.Name() != "error" {
		return "", false
	}
	var msg string
	if pre, ok := doc.Child("pre"); ok {
		msg = pre.Text()
		if problem, ok := pre.Child("problem"); ok {
			msg = problem.Text()
		}
	}
	if msg == "" {
		msg = doc.Text()
	}
	if msg == "" {
		msg = "feed returned an error document"
	}
	return strings.Join(strings.Fields(msg), " "), true
}

// firstParameterGroup returns dwml/data/parameters. Only the first data and
// parameters elements are consulted.
func firstParameterGroup(doc Node) (Node, error) {
	if msg, ok := FeedError(doc); ok {
		return nil, upstreamf("forecast", "%s", msg)
	}
	data, ok := doc.Child("data")
	if !ok {
		return nil, upstreamf("forecast", "document %q has no data element", doc.Name())
	}
	params, ok := data.Child("parameters")
	if !ok {
		return nil, upstreamf("forecast", "data element has no parameters group")
	}
	return params, nil
}

// addConvectiveHazard stores the severe component under its type. It reports
// false when the element has no usable component and nothing was written.
func addConvectiveHazard(out *NormalizedForecast, el Node) bool {
	comp, ok := el.Child("severe-component")
	if !ok || childText(comp, "name") == "" {
		return false
	}

	group, ok := existing[ComponentGroup](out, elemConvectiveHazard)
	if !ok {
		group = make(ComponentGroup)
		out.Set(elemConvectiveHazard, group)
	}
	group[attr(comp, "type")] = fullMeasurement(comp)
	return true
}

// addClimateAnomaly stores the anomaly's first period element under its
// element name and type.
func addClimateAnomaly(out *NormalizedForecast, el Node) bool {
	children := el.Children()
	if len(children) == 0 {
		return false
	}
	period := children[0]

	group, ok := existing[AnomalyGroup](out, elemClimateAnomaly)
	if !ok {
		group = make(AnomalyGroup)
		out.Set(elemClimateAnomaly, group)
	}
	byType, ok := group[period.Name()]
	if !ok {
		byType = make(map[string]Measurement)
		group[period.Name()] = byType
	}
	byType[attr(period, "type")] = fullMeasurement(period)
	return true
}

func hazardGroup(el Node, obs TransformObserver) *HazardGroup {
	group := NewHazardGroup(childText(el, "name"))
	for _, cond := range el.ChildrenByName("hazard-conditions") {
		if len(cond.Children()) == 0 {
			obs.ElementSkipped(ShapeHazards, "empty hazard conditions")
			continue
		}
		group.Append(conditionKey(cond), hazardRecord(cond))
	}
	return group
}

// conditionKey groups records by the condition's type attribute, falling back
// to the element name. "name" is taken by the group's own name.
func conditionKey(cond Node) string {
	if t, ok := cond.Attr("type"); ok && t != "" && t != "name" {
		return t
	}
	return cond.Name()
}

func hazardRecord(cond Node) HazardRecord {
	h, ok := cond.Child("hazard")
	if !ok {
		return HazardRecord{}
	}
	return HazardRecord{
		HazardCode:    attr(h, "hazardCode"),
		Phenomena:     attr(h, "phenomena"),
		Significance:  attr(h, "significance"),
		HazardType:    attr(h, "hazardType"),
		HazardTextURL: childText(h, "hazardTextURL"),
		HazardIcon:    childText(h, "hazardIcon"),
	}
}

// fullMeasurement always carries units, empty when the attribute is absent.
func fullMeasurement(n Node) Measurement {
	units := attr(n, "units")
	return Measurement{
		Name:  childText(n, "name"),
		Value: childText(n, "value"),
		Units: &units,
	}
}

// genericMeasurement carries units only when the element declares them.
func genericMeasurement(n Node) Measurement {
	m := Measurement{
		Name:  childText(n, "name"),
		Value: childText(n, "value"),
	}
	if units, ok := n.Attr("units"); ok {
		m.Units = &units
	}
	return m
}

func existing[T Value](out *NormalizedForecast, key string) (T, bool) {
	var zero T
	v, ok := out.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
