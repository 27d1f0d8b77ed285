// Package domain models National Digital Forecast Database (NDFD) point
// forecasts and the rules for flattening them.
//
// # Data Source
//
// Forecasts come from the NDFD REST interface, ndfdXMLclient.php on
// graphical.weather.gov. It answers two kinds of query used here:
//
//	listZipCodeList=20001               → <dwml><latLonList>38.9,-77.01</latLonList></dwml>
//	product=time-series&lat&lon&begin&end&<code>=<code>...
//	                                    → a DWML forecast document
//
// Element codes (maxt, wwa, conhazo, ...) are listed in [Elements]. Each one
// is requested by repeating the code as its own value, e.g. maxt=maxt.
//
// # DWML Conventions
//
// All forecast elements for a point sit under dwml/data/parameters. Only the
// first data and parameters elements are read. Most elements are a
// name/value pair with an optional units attribute:
//
//	<temperature type="maximum" units="Fahrenheit" time-layout="k-p24h-n1-1">
//	  <name>Daily Maximum Temperature</name>
//	  <value>72</value>
//	</temperature>
//
// A handful are shaped differently and get their own rule in [Transform]:
//
//	convective-hazard   one severe-component (type, units attributes; name, value)
//	climate-anomaly     one period element (weekly, monthly, seasonal) carrying type/units
//	hazards             hazard-conditions lists, each with a hazard element
//	conditions-icon     icon-link children instead of value
//
// Values are kept as strings. The feed uses xsi:nil for missing values, which
// comes through as "".
//
// # Output
//
// [NormalizedForecast] is an ordered map whose first entry is always lat-lon.
// Elements sharing an output key replace each other (last wins), apart from
// convective-hazard and climate-anomaly, which accumulate by type.
package domain
