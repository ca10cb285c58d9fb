package dropwindow

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/electronjoe/PhotoMap/internal/dropwindow/layout"
)

// tiledImage holds one photo that may be split into multiple tiles if its
// dimensions exceed the max texture size.
type tiledImage struct {
	tiles       []*ebiten.Image
	rects       []layout.Rect
	totalWidth  int
	totalHeight int
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// loadTiledImage decodes name from fsys and chops it into tiles.
func loadTiledImage(fsys fs.FS, name string) (*tiledImage, error) {
	src, err := layout.Decode(fsys, name)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	t := &tiledImage{totalWidth: b.Dx(), totalHeight: b.Dy()}
	sub, ok := src.(subImager)
	if !ok {
		return nil, fmt.Errorf("unable to tile image %s", name)
	}
	for _, r := range layout.Tiles(t.totalWidth, t.totalHeight) {
		rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(b.Min)
		t.tiles = append(t.tiles, ebiten.NewImageFromImage(sub.SubImage(rect)))
		t.rects = append(t.rects, r)
	}
	return t, nil
}

// draw fits the image into screen, centered, with every pixel scaled by
// the given color scale.
func (t *tiledImage) draw(screen *ebiten.Image, dim float32) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := layout.Scale(t.totalWidth, t.totalHeight, sw, sh)
	offsetX, offsetY := layout.Center(t.totalWidth, t.totalHeight, sw, sh, scale)

	for i, tile := range t.tiles {
		r := t.rects[i]
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(offsetX+float64(r.X)*scale, offsetY+float64(r.Y)*scale)
		op.ColorScale.Scale(dim, dim, dim, 1)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(tile, op)
	}
}

func (t *tiledImage) dispose() {
	if t == nil {
		return
	}
	for _, tile := range t.tiles {
		tile.Deallocate()
	}
}
