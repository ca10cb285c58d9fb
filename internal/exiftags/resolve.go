// Package exiftags turns decoder output keyed by numeric tag codes into
// dictionaries keyed by field name.
package exiftags

// Raw is decoded metadata keyed by tag code. Values are string, int,
// float64, []int, []float64, []byte, or a nested Raw under GPSInfoCode.
type Raw map[uint16]any

// Named is metadata keyed by field name.
type Named map[string]any

// Group isolates the GPS sub-block, resolved with the GPS table.
type Group struct {
	GPSInfo Named
}

// Resolve maps every code in raw to its name. The nested GPS block stays
// code-keyed in the returned Named and is resolved separately into Group.
// A nil raw yields an empty Named and an empty GPSInfo. raw is not modified.
func Resolve(raw Raw) (Named, Group) {
	named := make(Named, len(raw))
	group := Group{GPSInfo: Named{}}

	for code, value := range raw {
		named[Name(code)] = value
	}

	sub, ok := named[GPSInfoKey].(Raw)
	if !ok {
		return named, group
	}
	for code, value := range sub {
		group.GPSInfo[GPSName(code)] = value
	}
	return named, group
}
