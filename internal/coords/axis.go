// Package coords converts the GPS latitude/longitude fields of a resolved
// EXIF GPS block into display strings and signed decimal degrees.
package coords

import (
	"math"
	"strconv"
	"strings"

	"github.com/electronjoe/PhotoMap/internal/exiftags"
)

// Axis keys, used as the suffix of the GPS field names.
const (
	Latitude  = "Latitude"
	Longitude = "Longitude"
)

// Triple is a degrees, minutes, seconds value.
type Triple [3]float64

// Axis is one coordinate axis read from a GPS block. Value is nil and Ref
// is empty when the corresponding field is missing or unusable.
type Axis struct {
	Key   string
	Value *Triple
	Ref   string
}

// ReadAxis reads GPS<key> and GPS<key>Ref from info.
func ReadAxis(info exiftags.Named, key string) Axis {
	axis := Axis{Key: key}
	if t, ok := toTriple(info["GPS"+key]); ok {
		axis.Value = &t
	}
	if ref, ok := info["GPS"+key+"Ref"].(string); ok {
		axis.Ref = strings.TrimSpace(strings.Trim(ref, "\x00"))
	}
	return axis
}

// Complete reports whether both the triple and the reference are present.
func (a Axis) Complete() bool {
	return a.Value != nil && a.Ref != ""
}

// Sexagesimal renders the axis as {deg}°{min}′{sec}″ {ref}. Degrees and
// minutes are truncated toward zero; no sign is applied.
func (a Axis) Sexagesimal() (string, bool) {
	if !a.Complete() {
		return "", false
	}
	v := a.Value
	return strconv.FormatInt(int64(v[0]), 10) + "°" +
		strconv.FormatInt(int64(v[1]), 10) + "′" +
		FormatFloat(v[2]) + "″ " +
		a.Ref, true
}

// Decimal returns signed decimal degrees rounded to 8 places. S and W are
// negative.
func (a Axis) Decimal() (float64, bool) {
	if !a.Complete() {
		return 0, false
	}
	v := a.Value
	deg := v[0] + v[1]/60.0 + v[2]/3600.0
	if a.Ref == "S" || a.Ref == "W" {
		deg = -deg
	}
	return roundTo(deg, 8), true
}

// FormatFloat prints f in its shortest round-tripping decimal form, keeping
// at least one fractional digit so 30 prints as 30.0.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// roundTo rounds the exact binary value of f to places decimals. Going
// through the decimal string avoids the error of scaling f by 10^places.
func roundTo(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return f
	}
	return r
}

func toTriple(v any) (Triple, bool) {
	var t Triple
	switch vals := v.(type) {
	case []float64:
		if len(vals) < len(t) {
			return t, false
		}
		copy(t[:], vals)
	case []int:
		if len(vals) < len(t) {
			return t, false
		}
		for i := range t {
			t[i] = float64(vals[i])
		}
	case Triple:
		t = vals
	default:
		return t, false
	}
	return t, true
}
