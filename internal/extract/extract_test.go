package extract_test

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/PhotoMap/internal/coords"
	"github.com/electronjoe/PhotoMap/internal/exiftags"
	"github.com/electronjoe/PhotoMap/internal/extract"
	"github.com/electronjoe/PhotoMap/internal/metrics"
	"github.com/electronjoe/PhotoMap/internal/photo"
	"github.com/electronjoe/PhotoMap/internal/photo/phototest"
)

func sanFranciscoRaw() exiftags.Raw {
	return exiftags.Raw{
		0x0132: "2021:05:27 10:00:00",
		exiftags.GPSInfoCode: exiftags.Raw{
			0x01: "N",
			0x02: []float64{37, 46, 29.9832},
			0x03: "W",
			0x04: []float64{122, 25, 9.8232},
		},
	}
}

func fixed(raw exiftags.Raw, err error) extract.Decoder {
	return extract.DecoderFunc(func(string) (exiftags.Raw, error) {
		return raw, err
	})
}

func TestExtractor_Extract(t *testing.T) {
	logger := slog.Default()

	t.Run("full success", func(t *testing.T) {
		ex := extract.New(fixed(sanFranciscoRaw(), nil), logger, nil)

		res := ex.Extract("sf.jpg")

		require.True(t, res.OK())
		assert.Equal(t, extract.OutcomeSuccess, res.Outcome)
		assert.Equal(t, "sf.jpg", res.Path)
		assert.Equal(t, "37.77499533, -122.41939533", res.Decimal)
		assert.Equal(t, coords.Sexagesimal{
			Latitude:  "37°46′29.9832″ N",
			Longitude: "122°25′9.8232″ W",
		}, res.Sexagesimal)
		assert.InDelta(t, 37.77499533, res.Coordinates.Latitude, 1e-12)
		assert.InDelta(t, -122.41939533, res.Coordinates.Longitude, 1e-12)
		assert.True(t, strings.HasPrefix(res.Narrative, "Success!"))
		assert.Contains(t, res.Narrative, "2021:05:27 10:00:00")
		assert.Equal(t,
			"Success!  Date-Time: 2021:05:27 10:00:00\n37.77499533, -122.41939533 ",
			res.Narrative)
		assert.False(t, res.MissingDateTime)
		assert.NoError(t, res.Cause)
	})

	t.Run("no metadata", func(t *testing.T) {
		ex := extract.New(fixed(nil, nil), logger, nil)

		res := ex.Extract("blank.jpg")

		assert.False(t, res.OK())
		assert.Empty(t, res.Decimal)
		assert.Equal(t, extract.OutcomeNoMetadata, res.Outcome)
		assert.Equal(t, "*** not processed ***: no EXIF data extracted ", res.Narrative)
	})

	t.Run("decode failure collapses to no metadata", func(t *testing.T) {
		cause := fmt.Errorf("%w: truncated", photo.ErrFormat)
		ex := extract.New(fixed(exiftags.Raw{0x0132: "ignored"}, cause), logger, nil)

		res := ex.Extract("broken.jpg")

		assert.Equal(t, extract.OutcomeNoMetadata, res.Outcome)
		assert.Equal(t, "*** not processed ***: no EXIF data extracted ", res.Narrative)
		assert.Empty(t, res.Decimal)
		assert.ErrorIs(t, res.Cause, photo.ErrFormat)
	})

	t.Run("metadata without gps", func(t *testing.T) {
		ex := extract.New(fixed(exiftags.Raw{0x0132: "2021:05:27 10:00:00"}, nil), logger, nil)

		res := ex.Extract("indoor.jpg")

		assert.Equal(t, extract.OutcomeNoGPS, res.Outcome)
		assert.Empty(t, res.Decimal)
		assert.Contains(t, res.Narrative, "no GPS data found/processed")
		assert.Equal(t, "*** not processed ***: *** no GPS data found/processed *** ", res.Narrative)
		assert.Equal(t, "2021:05:27 10:00:00", res.DateTime)
	})

	t.Run("no gps and no date-time accumulate", func(t *testing.T) {
		ex := extract.New(fixed(exiftags.Raw{0x010f: "Canon"}, nil), logger, nil)

		res := ex.Extract("bare.jpg")

		assert.True(t, res.MissingDateTime)
		assert.Equal(t,
			"*** not processed ***: *** no Date-Time ****** no GPS data found/processed *** ",
			res.Narrative)
	})

	t.Run("missing latitude reference only", func(t *testing.T) {
		raw := sanFranciscoRaw()
		delete(raw[exiftags.GPSInfoCode].(exiftags.Raw), 0x01)
		ex := extract.New(fixed(raw, nil), logger, nil)

		res := ex.Extract("noref.jpg")

		assert.Equal(t, extract.OutcomeNoGPS, res.Outcome)
		assert.Empty(t, res.Decimal)
		assert.Equal(t, coords.Sexagesimal{}, res.Sexagesimal)
		assert.Contains(t, res.Narrative, "no GPS data found/processed")
	})

	t.Run("success without date-time", func(t *testing.T) {
		raw := sanFranciscoRaw()
		delete(raw, 0x0132)
		ex := extract.New(fixed(raw, nil), logger, nil)

		res := ex.Extract("nodate.jpg")

		require.True(t, res.OK())
		assert.True(t, res.MissingDateTime)
		assert.Equal(t,
			"Success! \n*** no Date-Time ***37.77499533, -122.41939533 ",
			res.Narrative)
	})
}

func TestExtractor_ExtractWithDecoder(t *testing.T) {
	logger := slog.Default()
	ex := extract.New(photo.NewDecoder(0), logger, nil)

	t.Run("real jpeg", func(t *testing.T) {
		path := phototest.WriteFile(t, "sf.jpg", phototest.SanFrancisco().JPEG())

		res := ex.Extract(path)

		require.True(t, res.OK(), res.Narrative)
		assert.Equal(t, "37.77499533, -122.41939533", res.Decimal)
	})

	t.Run("longitude reference missing in file", func(t *testing.T) {
		fixture := phototest.SanFrancisco()
		fixture.LonRef = ""
		path := phototest.WriteFile(t, "noref.jpg", fixture.JPEG())

		res := ex.Extract(path)

		assert.Equal(t, extract.OutcomeNoGPS, res.Outcome)
	})

	t.Run("unreadable file", func(t *testing.T) {
		res := ex.Extract(t.TempDir() + "/gone.jpg")

		assert.Equal(t, extract.OutcomeNoMetadata, res.Outcome)
		assert.Equal(t, "*** not processed ***: no EXIF data extracted ", res.Narrative)
		assert.ErrorIs(t, res.Cause, photo.ErrUnreadable)
	})
}

func TestExtractor_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	failing := fixed(nil, fmt.Errorf("%w: nope", photo.ErrUnreadable))

	extract.New(fixed(sanFranciscoRaw(), nil), slog.Default(), m).Extract("a.jpg")
	extract.New(failing, slog.Default(), m).Extract("b.jpg")

	assert.InDelta(t, 1, testutil.ToFloat64(m.Extractions.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Extractions.WithLabelValues("no_metadata")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DecodeFailures.WithLabelValues("unreadable")), 0)
}

func TestFromMetadata_Idempotent(t *testing.T) {
	raw := sanFranciscoRaw()

	first := extract.FromMetadata(raw)
	second := extract.FromMetadata(raw)

	assert.Equal(t, first, second)
	assert.Equal(t, sanFranciscoRaw(), raw)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", extract.OutcomeSuccess.String())
	assert.Equal(t, "no_gps", extract.OutcomeNoGPS.String())
	assert.Equal(t, "no_metadata", extract.OutcomeNoMetadata.String())
	assert.Equal(t, "outcome(9)", extract.Outcome(9).String())
}

func TestBanner(t *testing.T) {
	res := extract.FromMetadata(nil)

	assert.Equal(t,
		"Done: x.jpg\n\n Drop Image Here \n\n*** not processed ***: no EXIF data extracted ",
		extract.Banner("x.jpg", res))
	assert.Equal(t, "\n\n Drop Image Here \n\nInitiate", extract.IdleBanner())
}
