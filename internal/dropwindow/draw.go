package dropwindow

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/electronjoe/PhotoMap/internal/dropwindow/layout"
)

const (
	previewDim  = 0.35
	borderInset = 12
	dashLength  = 10
	lineHeight  = 16
	textMargin  = 24
)

var (
	backgroundColor = color.RGBA{0x20, 0x20, 0x20, 0xff}
	borderColor     = color.RGBA{0xa0, 0xa0, 0xa0, 0xff}
)

// drawDropTarget outlines the window with a dashed rectangle.
func drawDropTarget(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x0, y0 := float32(borderInset), float32(borderInset)
	x1, y1 := float32(sw-borderInset), float32(sh-borderInset)

	dashed := func(ax, ay, bx, by float32) {
		horizontal := ay == by
		length := bx - ax
		if !horizontal {
			length = by - ay
		}
		for d := float32(0); d < length; d += 2 * dashLength {
			end := min(d+dashLength, length)
			if horizontal {
				vector.StrokeLine(screen, ax+d, ay, ax+end, ay, 2, borderColor, false)
			} else {
				vector.StrokeLine(screen, ax, ay+d, ax, ay+end, 2, borderColor, false)
			}
		}
	}
	dashed(x0, y0, x1, y0)
	dashed(x0, y1, x1, y1)
	dashed(x0, y0, x0, y1)
	dashed(x1, y0, x1, y1)
}

// drawBanner centers the wrapped banner text in the window.
func drawBanner(screen *ebiten.Image, banner string) {
	face := basicfont.Face7x13
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	cols := (sw - 2*textMargin) / face.Advance
	lines := layout.Wrap(banner, cols)

	y := (sh-len(lines)*lineHeight)/2 + face.Ascent
	for _, line := range lines {
		width := text.BoundString(face, line).Dx()
		x := (sw - width) / 2
		text.Draw(screen, line, face, x, y, color.White)
		y += lineHeight
	}
}
