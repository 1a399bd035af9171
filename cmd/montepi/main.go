// Command montepi estimates π by Monte Carlo sampling and shows the samples as
// a live per-pixel color average next to the controls and statistics.
//
// Usage:
//
//	montepi [-config file.json] [-preset 0..5] [-points 1..1000] [-seed n]
//	montepi -headless -frames 1000 -out pi.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/montepi"
	"github.com/gogpu/montepi/internal/app"
	"github.com/gogpu/montepi/internal/config"
	"github.com/gogpu/montepi/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		title      = flag.String("title", "", "window title")
		preset     = flag.Int("preset", -1, "texture size preset 0-5 (8x8 .. 1024x1024)")
		points     = flag.Int("points", 0, "points per frame, 1-1000")
		seed       = flag.Int64("seed", -1, "generator seed (default 0)")
		inside     = flag.String("inside", "", "inside circle color, #rrggbb")
		outside    = flag.String("outside", "", "outside circle color, #rrggbb")
		snapDir    = flag.String("snapshot-dir", "", "directory for snapshots")
		snapFormat = flag.String("snapshot-format", "", "snapshot format: png, webp or tga")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn or error")
		headless   = flag.Bool("headless", false, "run without a window")
		frames     = flag.Int("frames", 1000, "frames to run in headless mode")
		out        = flag.String("out", "", "headless output image (.png, .webp or .tga)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal(err)
		}
	}
	cfg.Resolve(config.Flags{
		Width:          *width,
		Height:         *height,
		Title:          *title,
		Preset:         *preset,
		PointsPerFrame: *points,
		Seed:           *seed,
		InsideColor:    *inside,
		OutsideColor:   *outside,
		SnapshotDir:    *snapDir,
		SnapshotFormat: *snapFormat,
		LogLevel:       *logLevel,
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	montepi.SetLogger(logger)
	gg.SetLogger(logger)

	if *headless {
		runHeadless(cfg, *frames, *out)
		return
	}
	if err := runWindow(cfg, logger); err != nil {
		logger.Error("montepi: exiting", "error", err)
		os.Exit(1)
	}
}

func runHeadless(cfg config.Config, frames int, out string) {
	stats, err := app.RunHeadless(cfg, frames, out)
	if err != nil {
		fatal(err)
	}
	for _, line := range app.StatsLines(stats) {
		fmt.Println(line)
	}
}

var _ canvas = (*ggcanvas.Canvas)(nil)

func runWindow(cfg config.Config, logger *slog.Logger) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	font, err := ui.LoadFont()
	if err != nil {
		return err
	}
	face := font.Face(a.Theme().FontSize)

	window := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	var input ui.Input
	input.Attach(window.EventSource())

	loop := &frameLoop{
		app:    a,
		face:   face,
		input:  &input,
		logger: logger,
		newCanvas: func(w, h int) (canvas, error) {
			provider := window.GPUContextProvider()
			if provider == nil {
				return nil, nil
			}
			c, err := ggcanvas.New(provider, w, h)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		sleep: time.Sleep,
	}
	window.OnDraw(func(dc *gogpu.Context) {
		if err := loop.frame(dc.Width(), dc.Height(), dc.AsTextureDrawer(), time.Now()); err != nil {
			logger.Error("montepi: exiting", "error", err)
			os.Exit(1)
		}
	})

	window.OnClose(func() {
		gg.CloseAccelerator()
		if err := font.Close(); err != nil {
			logger.Debug("montepi: close font", "error", err)
		}
	})

	return window.Run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "montepi:", err)
	os.Exit(1)
}
