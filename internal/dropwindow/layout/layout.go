// Package layout holds the window geometry and photo decoding that do not
// depend on a graphics context.
package layout

import (
	"math"
	"strings"
)

// MaxTileSize is the largest texture side a preview tile may have.
const MaxTileSize = 2048

// Scale returns the factor that fits an image inside a box while keeping
// its aspect ratio.
func Scale(imgW, imgH, boxW, boxH int) float64 {
	if imgW == 0 || imgH == 0 {
		return 1.0
	}
	scaleW := float64(boxW) / float64(imgW)
	scaleH := float64(boxH) / float64(imgH)
	return math.Min(scaleW, scaleH)
}

// Center returns the top-left offset that centers an image of the given
// size, scaled by scale, in the box.
func Center(imgW, imgH, boxW, boxH int, scale float64) (float64, float64) {
	return (float64(boxW) - float64(imgW)*scale) / 2,
		(float64(boxH) - float64(imgH)*scale) / 2
}

// Rect is a sub-rectangle of a source image.
type Rect struct {
	X, Y, W, H int
}

// Tiles splits a w×h image into row-major rectangles no larger than
// MaxTileSize on either side.
func Tiles(w, h int) []Rect {
	var rects []Rect
	for y := 0; y < h; y += MaxTileSize {
		for x := 0; x < w; x += MaxTileSize {
			rects = append(rects, Rect{
				X: x,
				Y: y,
				W: min(MaxTileSize, w-x),
				H: min(MaxTileSize, h-y),
			})
		}
	}
	return rects
}

// Wrap breaks text into lines of at most cols characters. Existing line
// breaks are kept, and words longer than cols are split.
func Wrap(text string, cols int) []string {
	if cols <= 0 {
		cols = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len([]rune(word)) > cols {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				r := []rune(word)
				lines = append(lines, string(r[:cols]))
				word = string(r[cols:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= cols:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
