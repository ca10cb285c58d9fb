package layout_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/PhotoMap/internal/dropwindow/layout"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0x40, 0x80, 0xc0, 0xff})
		}
	}
	return img
}

// baselineTIFF builds an uncompressed little-endian RGB TIFF of w×h grey
// pixels, one strip.
func baselineTIFF(w, h int) []byte {
	type field struct {
		tag, typ uint16
		count    uint32
		value    uint32
	}
	const (
		short = 3
		long  = 4
	)
	const entries = 10
	ifdSize := 2 + entries*12 + 4
	bpsOffset := 8 + ifdSize
	pixelOffset := bpsOffset + 6
	pixels := w * h * 3

	fields := []field{
		{256, long, 1, uint32(w)},
		{257, long, 1, uint32(h)},
		{258, short, 3, uint32(bpsOffset)},
		{259, short, 1, 1},
		{262, short, 1, 2},
		{273, long, 1, uint32(pixelOffset)},
		{277, short, 1, 3},
		{278, long, 1, uint32(h)},
		{279, long, 1, uint32(pixels)},
		{284, short, 1, 1},
	}

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II")
	_ = binary.Write(&buf, le, uint16(42))
	_ = binary.Write(&buf, le, uint32(8))
	_ = binary.Write(&buf, le, uint16(len(fields)))
	for _, f := range fields {
		_ = binary.Write(&buf, le, f.tag)
		_ = binary.Write(&buf, le, f.typ)
		_ = binary.Write(&buf, le, f.count)
		_ = binary.Write(&buf, le, f.value)
	}
	_ = binary.Write(&buf, le, uint32(0))
	_ = binary.Write(&buf, le, [3]uint16{8, 8, 8})
	buf.Write(bytes.Repeat([]byte{0x80}, pixels))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, solid(24, 16), nil))
	fsys := fstest.MapFS{
		"photo.jpg": {Data: jpg.Bytes()},
		"scan.tiff": {Data: baselineTIFF(12, 30)},
		"notes.txt": {Data: []byte("not an image")},
	}

	t.Run("jpeg", func(t *testing.T) {
		img, err := layout.Decode(fsys, "photo.jpg")

		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())
	})

	t.Run("tiff", func(t *testing.T) {
		img, err := layout.Decode(fsys, "scan.tiff")

		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 12, 30), img.Bounds())
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := layout.Decode(fsys, "notes.txt")

		require.ErrorIs(t, err, image.ErrFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := layout.Decode(fsys, "absent.jpg")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to open file absent.jpg")
	})
}
