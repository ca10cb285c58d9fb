// Package phototest builds minimal EXIF-bearing JPEG and TIFF byte streams
// for tests.
package phototest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TIFF field types used by the builders.
const (
	TypeASCII    uint16 = 2
	TypeLong     uint16 = 4
	TypeRational uint16 = 5
)

const gpsPointerID = 0x8825

var order = binary.LittleEndian

// Entry is one IFD entry. Data holds the already-encoded value bytes.
type Entry struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// Rational is an unsigned TIFF rational.
type Rational struct {
	Num, Den uint32
}

// ASCII returns a NUL-terminated string entry.
func ASCII(id uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{ID: id, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

// Rationals returns a rational list entry.
func Rationals(id uint16, vals ...Rational) Entry {
	data := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		data = order.AppendUint32(data, v.Num)
		data = order.AppendUint32(data, v.Den)
	}
	return Entry{ID: id, Type: TypeRational, Count: uint32(len(vals)), Data: data}
}

// Long returns a single LONG entry.
func Long(id uint16, v uint32) Entry {
	return Entry{ID: id, Type: TypeLong, Count: 1, Data: order.AppendUint32(nil, v)}
}

// TIFF lays out a little-endian TIFF stream with IFD0 and, when gps is
// non-nil, a GPS sub-IFD referenced from IFD0.
func TIFF(ifd0, gps []Entry) []byte {
	entries := append([]Entry(nil), ifd0...)
	if gps != nil {
		entries = append(entries, Long(gpsPointerID, 0))
	}

	const ifd0Offset = 8
	gpsOffset := ifd0Offset + dirSize(entries) + overflowSize(entries)
	if gps != nil {
		entries[len(entries)-1] = Long(gpsPointerID, uint32(gpsOffset))
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	buf.Write(order.AppendUint16(nil, 42))
	buf.Write(order.AppendUint32(nil, ifd0Offset))
	writeIFD(&buf, entries, ifd0Offset)
	if gps != nil {
		writeIFD(&buf, gps, gpsOffset)
	}
	return buf.Bytes()
}

// JPEG wraps a TIFF stream in an APP1 Exif segment between SOI and EOI.
func JPEG(ifd0, gps []Entry) []byte {
	payload := append([]byte("Exif\x00\x00"), TIFF(ifd0, gps)...)
	return Segment(0xE1, payload)
}

// Segment returns SOI, one marker segment, and EOI.
func Segment(marker byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8, 0xFF, marker})
	buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(payload)+2)))
	buf.Write(payload)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// Photo describes the fields a fixture carries. Empty strings and nil
// slices leave the corresponding tag out.
type Photo struct {
	DateTime  string
	Latitude  []Rational
	LatRef    string
	Longitude []Rational
	LonRef    string
	// NoGPS drops the GPS sub-IFD entirely.
	NoGPS bool
}

// SanFrancisco is the reference fixture: 37°46′29.9832″ N, 122°25′9.8232″ W.
func SanFrancisco() Photo {
	return Photo{
		DateTime:  "2021:05:27 10:00:00",
		Latitude:  []Rational{{37, 1}, {46, 1}, {299832, 10000}},
		LatRef:    "N",
		Longitude: []Rational{{122, 1}, {25, 1}, {98232, 10000}},
		LonRef:    "W",
	}
}

// JPEG encodes p.
func (p Photo) JPEG() []byte {
	var ifd0 []Entry
	if p.DateTime != "" {
		ifd0 = append(ifd0, ASCII(0x0132, p.DateTime))
	}
	ifd0 = append(ifd0, ASCII(0x010F, "PhotoMap"))
	if p.NoGPS {
		return JPEG(ifd0, nil)
	}

	gps := []Entry{}
	if p.LatRef != "" {
		gps = append(gps, ASCII(0x0001, p.LatRef))
	}
	if p.Latitude != nil {
		gps = append(gps, Rationals(0x0002, p.Latitude...))
	}
	if p.LonRef != "" {
		gps = append(gps, ASCII(0x0003, p.LonRef))
	}
	if p.Longitude != nil {
		gps = append(gps, Rationals(0x0004, p.Longitude...))
	}
	return JPEG(ifd0, gps)
}

// WriteFile writes data under t.TempDir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

func dirSize(entries []Entry) int {
	return 2 + 12*len(entries) + 4
}

func overflowSize(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if len(e.Data) > 4 {
			n += len(e.Data)
		}
	}
	return n
}

func writeIFD(buf *bytes.Buffer, entries []Entry, offset int) {
	dataOffset := offset + dirSize(entries)
	var data []byte

	buf.Write(order.AppendUint16(nil, uint16(len(entries))))
	for _, e := range entries {
		buf.Write(order.AppendUint16(nil, e.ID))
		buf.Write(order.AppendUint16(nil, e.Type))
		buf.Write(order.AppendUint32(nil, e.Count))
		if len(e.Data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.Data)
			buf.Write(inline)
			continue
		}
		buf.Write(order.AppendUint32(nil, uint32(dataOffset+len(data))))
		data = append(data, e.Data...)
	}
	buf.Write(order.AppendUint32(nil, 0))
	buf.Write(data)
}
