// Package extract drives a photo through decoding, tag resolution and
// coordinate conversion, and classifies the outcome.
package extract

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/electronjoe/PhotoMap/internal/coords"
	"github.com/electronjoe/PhotoMap/internal/exiftags"
	"github.com/electronjoe/PhotoMap/internal/metrics"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

// Decoder supplies code-keyed metadata for a file. A nil Raw with a nil
// error means the file carries no metadata.
type Decoder interface {
	Decode(name string) (exiftags.Raw, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(name string) (exiftags.Raw, error)

// Decode calls f(name).
func (f DecoderFunc) Decode(name string) (exiftags.Raw, error) {
	return f(name)
}

// Outcome classifies an extraction.
type Outcome int

const (
	// OutcomeNoMetadata covers undecodable files and files without EXIF.
	OutcomeNoMetadata Outcome = iota
	// OutcomeNoGPS means metadata was present but no latitude/longitude pair.
	OutcomeNoGPS
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoMetadata:
		return "no_metadata"
	case OutcomeNoGPS:
		return "no_gps"
	case OutcomeSuccess:
		return "success"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Narrative fragments.
const (
	notProcessed   = "*** not processed ***: "
	noEXIF         = "no EXIF data extracted "
	noDateTime     = "*** no Date-Time ***"
	noGPS          = "*** no GPS data found/processed *** "
	successStatus  = "Success! "
	dateTimePrefix = " Date-Time: "
)

// Result is the outcome of one extraction. Decimal is empty unless Outcome
// is OutcomeSuccess; Narrative is always set.
type Result struct {
	Path      string
	Outcome   Outcome
	Decimal   string
	Narrative string

	DateTime        string
	MissingDateTime bool
	Sexagesimal     coords.Sexagesimal
	Coordinates     coords.Decimal

	// Cause is the decode error behind OutcomeNoMetadata, if any.
	Cause error
}

// OK reports whether a decimal coordinate pair was produced.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Extractor runs the pipeline. It holds no per-call state.
type Extractor struct {
	decoder Decoder
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New returns an Extractor. m may be nil.
func New(decoder Decoder, log *slog.Logger, m *metrics.Metrics) *Extractor {
	return &Extractor{decoder: decoder, log: log, metrics: m}
}

// Extract decodes path and derives its coordinates. It never fails: every
// problem ends up in the returned narrative.
func (e *Extractor) Extract(path string) Result {
	start := time.Now()

	raw, err := e.decoder.Decode(path)
	if err != nil {
		e.log.Warn("Could not decode metadata", "path", path, "cause", photo.Cause(err), "error", err)
		if e.metrics != nil {
			e.metrics.DecodeFailures.WithLabelValues(photo.Cause(err)).Inc()
		}
		raw = nil
	}

	res := FromMetadata(raw)
	res.Path = path
	res.Cause = err

	if res.OK() {
		e.log.Debug("For Google Maps/Earth copy and paste", "path", path, "coordinates", res.Sexagesimal.String())
		e.log.Info("Extracted coordinates", "path", path, "decimal", res.Decimal)
	} else {
		e.log.Info("Photo not processed", "path", path, "outcome", res.Outcome.String())
	}

	if e.metrics != nil {
		e.metrics.Extractions.WithLabelValues(res.Outcome.String()).Inc()
		e.metrics.ExtractSeconds.Observe(time.Since(start).Seconds())
	}
	return res
}

// FromMetadata runs resolution and conversion over already-decoded
// metadata. A nil raw is treated as a file without EXIF.
func FromMetadata(raw exiftags.Raw) Result {
	status := notProcessed
	var errMsg string

	if raw == nil {
		return Result{Outcome: OutcomeNoMetadata, Narrative: status + noEXIF}
	}

	named, group := exiftags.Resolve(raw)
	res := Result{Outcome: OutcomeNoGPS}

	dateNote := ""
	if dt, ok := named["DateTime"]; ok {
		res.DateTime = fmt.Sprint(dt)
		dateNote = dateTimePrefix + res.DateTime
	} else {
		res.MissingDateTime = true
		errMsg += noDateTime
	}

	sex, ok := coords.FormatSexagesimal(group.GPSInfo)
	if !ok {
		errMsg += noGPS
		res.Narrative = status + errMsg
		return res
	}

	// The formatter already proved both axes complete, so the
	// conversion cannot come back empty.
	dec, _ := coords.ToDecimal(group.GPSInfo)
	res.Outcome = OutcomeSuccess
	res.Sexagesimal = sex
	res.Coordinates = dec
	res.Decimal = dec.String()

	errMsg += res.Decimal + " "
	status = successStatus + dateNote + "\n"
	res.Narrative = status + errMsg
	return res
}
