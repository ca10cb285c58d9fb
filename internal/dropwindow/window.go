// Package dropwindow is the desktop front end: a small window that
// accepts a dropped photo, shows what was found and opens the map.
package dropwindow

import (
	"io/fs"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/electronjoe/PhotoMap/internal/extract"
	"github.com/electronjoe/PhotoMap/internal/maplink"
	"github.com/electronjoe/PhotoMap/internal/metrics"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

const (
	// Title is the window title.
	Title = "GPS Extraction from Photo"
	// DefaultSize is the initial window width and height.
	DefaultSize = 400
)

// Options configures a Window.
type Options struct {
	MapBaseURL  string
	MaxFileSize int64
	OpenBrowser bool
	Browser     extract.Browser
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Window implements ebiten.Game.
type Window struct {
	opts Options

	banner  string
	preview *tiledImage
}

// New creates a window showing the idle banner.
func New(opts Options) *Window {
	if opts.Browser == nil {
		opts.Browser = maplink.NewOpener()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MapBaseURL == "" {
		opts.MapBaseURL = maplink.DefaultBaseURL
	}
	return &Window{opts: opts, banner: extract.IdleBanner()}
}

// Update is called by Ebiten ~60 times/sec and picks up dropped files.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if fsys := ebiten.DroppedFiles(); fsys != nil {
		if name, ok := firstFile(fsys); ok {
			w.process(fsys, name)
		}
	}
	return nil
}

// Draw renders the preview, the drop target and the banner.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if w.preview != nil {
		w.preview.draw(screen, previewDim)
	}
	drawDropTarget(screen)
	drawBanner(screen, w.banner)
}

// Layout follows the window size; the window is resizable.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(w *Window) error {
	ebiten.SetWindowSize(DefaultSize, DefaultSize)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(w)
}

// process runs one extraction over a dropped file. The dropped file
// system is only valid during this Update call.
func (w *Window) process(fsys fs.FS, name string) {
	log := w.opts.Logger
	extractor := extract.New(photo.NewFSDecoder(fsys, w.opts.MaxFileSize), log, w.opts.Metrics)

	res := extractor.Extract(name)
	w.banner = extract.Banner(name, res)

	w.preview.dispose()
	w.preview = nil
	if preview, err := loadTiledImage(fsys, name); err != nil {
		log.Debug("No preview for dropped file", "name", name, "error", err)
	} else {
		w.preview = preview
	}

	link, err := extract.ShowOnMap(res, w.opts.MapBaseURL, w.opts.OpenBrowser, w.opts.Browser)
	if err != nil {
		log.Error("Failed to show map", "base", w.opts.MapBaseURL, "url", link, "error", err)
	}
}

// firstFile returns the first regular file at the root of a drop.
func firstFile(fsys fs.FS) (string, bool) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			return e.Name(), true
		}
	}
	return "", false
}
