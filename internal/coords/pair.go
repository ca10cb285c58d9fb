package coords

import "github.com/electronjoe/PhotoMap/internal/exiftags"

// Sexagesimal is a latitude/longitude pair of display strings.
type Sexagesimal struct {
	Latitude  string
	Longitude string
}

// String joins the pair for copy and paste into a map search box.
func (s Sexagesimal) String() string {
	return s.Latitude + ", " + s.Longitude
}

// Decimal is a latitude/longitude pair in signed decimal degrees.
type Decimal struct {
	Latitude  float64
	Longitude float64
}

// String joins the pair as "{lat}, {lon}".
func (d Decimal) String() string {
	return FormatFloat(d.Latitude) + ", " + FormatFloat(d.Longitude)
}

// FormatSexagesimal formats both axes of a GPS block. ok is false unless
// both latitude and longitude could be formatted.
func FormatSexagesimal(info exiftags.Named) (Sexagesimal, bool) {
	lat, latOK := ReadAxis(info, Latitude).Sexagesimal()
	lon, lonOK := ReadAxis(info, Longitude).Sexagesimal()
	if !latOK || !lonOK {
		return Sexagesimal{}, false
	}
	return Sexagesimal{Latitude: lat, Longitude: lon}, true
}

// ToDecimal converts both axes of a GPS block to decimal degrees, reading
// the raw fields independently of FormatSexagesimal. ok is false unless
// both axes convert.
func ToDecimal(info exiftags.Named) (Decimal, bool) {
	lat, latOK := ReadAxis(info, Latitude).Decimal()
	lon, lonOK := ReadAxis(info, Longitude).Decimal()
	if !latOK || !lonOK {
		return Decimal{}, false
	}
	return Decimal{Latitude: lat, Longitude: lon}, true
}
