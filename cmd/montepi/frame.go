package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/montepi/internal/app"
	"github.com/gogpu/montepi/internal/ui"
)

// minimizedSleep is how long a frame idles while the window has no area.
const minimizedSleep = 10 * time.Millisecond

// canvas is the part of *ggcanvas.Canvas the frame loop drives.
type canvas interface {
	Size() (width, height int)
	Resize(width, height int) error
	Draw(fn func(*gg.Context)) error
	RenderTo(dc gpucontext.TextureDrawer) error
}

// frameLoop owns the window-side state of one frame: the lazily created
// canvas, the input recorder and the application.
type frameLoop struct {
	app    *app.App
	face   text.Face
	input  *ui.Input
	logger *slog.Logger

	// newCanvas returns a nil canvas and nil error while the GPU is not
	// ready yet.
	newCanvas func(width, height int) (canvas, error)
	sleep     func(time.Duration)

	canvas canvas
}

// frame draws and presents one frame of a width x height window.
// The only error it returns is a failure to create the canvas.
func (f *frameLoop) frame(width, height int, target gpucontext.TextureDrawer, now time.Time) error {
	if width <= 0 || height <= 0 {
		f.sleep(minimizedSleep)
		return nil
	}

	if f.canvas == nil {
		c, err := f.newCanvas(width, height)
		if err != nil {
			return fmt.Errorf("create canvas: %w", err)
		}
		if c == nil {
			return nil
		}
		f.canvas = c
		f.logger.Info("window ready", "width", width, "height", height)
	}

	if cw, ch := f.canvas.Size(); cw != width || ch != height {
		if err := f.canvas.Resize(width, height); err != nil {
			f.logger.Warn("montepi: resize canvas", "error", err)
		}
	}

	in := f.input.EndFrame()
	if err := f.canvas.Draw(func(dc *gg.Context) {
		f.app.Frame(dc, f.face, in, now)
	}); err != nil {
		f.logger.Warn("montepi: draw", "error", err)
	}
	if err := f.canvas.RenderTo(target); err != nil {
		f.logger.Warn("montepi: render", "error", err)
	}
	return nil
}
