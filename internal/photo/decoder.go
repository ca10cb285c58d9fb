package photo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/electronjoe/PhotoMap/internal/exiftags"
)

// DefaultMaxFileSize bounds how much of a file the decoder is willing to read.
const DefaultMaxFileSize int64 = 64 << 20

// Decode failure causes. Every error returned by Decoder.Decode wraps one of these.
var (
	ErrUnreadable = errors.New("file unreadable")
	ErrTooLarge   = errors.New("file too large")
	ErrNoMetadata = errors.New("no EXIF metadata")
	ErrFormat     = errors.New("unsupported or corrupt metadata")
)

// Cause names the decode failure cause of err, for logs and metric labels.
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	case errors.Is(err, ErrNoMetadata):
		return "no_metadata"
	case errors.Is(err, ErrFormat):
		return "format"
	default:
		return "other"
	}
}

// Decoder reads EXIF metadata with goexif and flattens it into code-keyed
// form. The GPS sub-IFD is nested under exiftags.GPSInfoCode.
type Decoder struct {
	// FS is read instead of the OS file system when set.
	FS fs.FS
	// MaxFileSize rejects larger files before any decoding happens.
	MaxFileSize int64
}

// NewDecoder returns a Decoder for OS paths.
func NewDecoder(maxFileSize int64) *Decoder {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Decoder{MaxFileSize: maxFileSize}
}

// NewFSDecoder returns a Decoder that opens names within fsys.
func NewFSDecoder(fsys fs.FS, maxFileSize int64) *Decoder {
	d := NewDecoder(maxFileSize)
	d.FS = fsys
	return d
}

// Decode opens name and returns its metadata keyed by tag code.
func (d *Decoder) Decode(name string) (exiftags.Raw, error) {
	f, err := d.open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnreadable, name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrUnreadable, name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, name)
	}
	limit := d.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, name, info.Size(), limit)
	}

	x, err := exif.Decode(io.LimitReader(f, limit))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, classify(name, err)
	}

	w := newRawWalker()
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrFormat, name, err)
	}
	return w.raw(), nil
}

func (d *Decoder) open(name string) (fs.File, error) {
	if d.FS != nil {
		return d.FS.Open(name)
	}
	return os.Open(name)
}

// classify maps goexif's untyped errors onto the package causes. goexif
// reports a missing APP1/Exif segment through EOF or the intro marker
// message and everything else through its decode error.
func classify(name string, err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		strings.HasSuffix(msg, "EOF"),
		strings.Contains(msg, "failed to find exif intro marker"),
		strings.Contains(msg, "error reading 4 byte header"):
		return fmt.Errorf("%w: %s: %w", ErrNoMetadata, name, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
	}
}

// rawWalker collects goexif fields into primary and GPS maps by tag code.
type rawWalker struct {
	primary exiftags.Raw
	gps     exiftags.Raw
	hasGPS  bool
}

func newRawWalker() *rawWalker {
	return &rawWalker{primary: exiftags.Raw{}, gps: exiftags.Raw{}}
}

func (w *rawWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	value, ok := tagValue(tag)
	if !ok {
		return nil
	}
	switch {
	case name == exif.GPSInfoIFDPointer:
		w.hasGPS = true
	case strings.HasPrefix(string(name), "GPS"):
		w.gps[tag.Id] = value
	default:
		w.primary[tag.Id] = value
	}
	return nil
}

func (w *rawWalker) raw() exiftags.Raw {
	if w.hasGPS || len(w.gps) > 0 {
		w.primary[exiftags.GPSInfoCode] = w.gps
	}
	return w.primary
}

// tagValue converts a tiff tag to a plain Go value. Single values stay
// scalar; rational lists (GPS triples among them) become []float64.
func tagValue(tag *tiff.Tag) (any, bool) {
	n := int(tag.Count)
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil, false
		}
		return strings.TrimRight(s, "\x00"), true
	case tiff.RatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return nil, false
			}
			// Cameras write 0/0 for unknown components.
			if den == 0 {
				vals = append(vals, 0)
				continue
			}
			vals = append(vals, float64(num)/float64(den))
		}
		if n == 1 {
			return vals[0], true
		}
		return vals, true
	case tiff.FloatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			f, err := tag.Float(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, f)
		}
		if n == 1 {
			return vals[0], true
		}
		return vals, true
	case tiff.IntVal:
		vals := make([]int, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, v)
		}
		if n == 1 {
			return vals[0], true
		}
		return vals, true
	default:
		return append([]byte(nil), tag.Val...), true
	}
}
