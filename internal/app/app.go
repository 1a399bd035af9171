// Package app holds the frame-loop state of the montepi window: the
// simulation, its texture, the control values and the panel layout.
package app

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/montepi"
	"github.com/gogpu/montepi/internal/config"
	"github.com/gogpu/montepi/internal/display"
	"github.com/gogpu/montepi/internal/snapshot"
	"github.com/gogpu/montepi/internal/ui"
)

// Layout metrics in window pixels.
const (
	margin          = 8.0
	propertiesWidth = 420.0
)

// Keyboard steps for points per frame.
const (
	pointsStep      = 1
	pointsShiftStep = 100
)

// App is the state shared by the frame callback and the input handlers.
// It is not safe for concurrent use; the frame loop owns it.
type App struct {
	sim   *montepi.Simulation
	tex   *display.Texture
	timer FrameTimer

	running        bool
	preset         int
	pointsPerFrame int
	inside         [3]uint8
	outside        [3]uint8

	snapshotDir    string
	snapshotFormat snapshot.Format
	lastSnapshot   string

	theme ui.Theme
	state ui.State
}

// New builds the texture and the simulation described by cfg. cfg must have
// been resolved and validated.
func New(cfg config.Config) (*App, error) {
	inside, outside, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	format, err := snapshot.ParseFormat(cfg.SnapshotFormat)
	if err != nil {
		return nil, err
	}

	size := cfg.TextureSize()
	tex, err := display.New(size, size)
	if err != nil {
		return nil, err
	}
	sim, err := montepi.New(size, size,
		montepi.WithSeed(cfg.Seed),
		montepi.WithColors(inside, outside),
		montepi.WithSurface(tex),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		sim:            sim,
		tex:            tex,
		running:        true,
		preset:         cfg.Preset,
		pointsPerFrame: montepi.ClampPointsPerFrame(cfg.PointsPerFrame),
		inside:         [3]uint8{inside.R, inside.G, inside.B},
		outside:        [3]uint8{outside.R, outside.G, outside.B},
		snapshotDir:    cfg.SnapshotDir,
		snapshotFormat: format,
		theme:          ui.DarkTheme(),
	}, nil
}

// Simulation returns the simulation driven by the app.
func (a *App) Simulation() *montepi.Simulation { return a.sim }

// Texture returns the viewport texture.
func (a *App) Texture() *display.Texture { return a.tex }

// Theme returns the panel theme.
func (a *App) Theme() ui.Theme { return a.theme }

// Running reports whether frames draw new samples.
func (a *App) Running() bool { return a.running }

// Preset returns the selected texture size index.
func (a *App) Preset() int { return a.preset }

// PointsPerFrame returns the number of samples drawn per running frame.
func (a *App) PointsPerFrame() int { return a.pointsPerFrame }

// LastSnapshot returns the path of the most recent snapshot, or "".
func (a *App) LastSnapshot() string { return a.lastSnapshot }

// TogglePlay switches between running and paused.
func (a *App) TogglePlay() {
	a.running = !a.running
	montepi.Logger().Debug("app: running toggled", "running", a.running)
}

// Reset clears all accumulation at the current size.
func (a *App) Reset() error {
	return a.sim.Reset()
}

// SelectPreset switches to the texture size at index i. The texture is
// recreated first and the simulation buffers follow immediately.
func (a *App) SelectPreset(i int) error {
	if i < 0 || i >= len(montepi.TextureSizes) {
		return fmt.Errorf("app: preset %d out of range [0, %d)", i, len(montepi.TextureSizes))
	}
	if i == a.preset {
		return nil
	}

	size := montepi.TextureSizes[i]
	if err := a.tex.Recreate(size, size); err != nil {
		return err
	}
	if err := a.sim.Resize(size, size); err != nil {
		return err
	}
	a.preset = i

	montepi.Logger().Info("texture size changed", "size", montepi.PresetName(i))
	return nil
}

// SetPointsPerFrame stores n clamped to the allowed range.
func (a *App) SetPointsPerFrame(n int) {
	a.pointsPerFrame = montepi.ClampPointsPerFrame(n)
}

// SetInsideColor changes the inside color; a different value resets.
func (a *App) SetInsideColor(c montepi.Color) error {
	a.inside = [3]uint8{c.R, c.G, c.B}
	return a.sim.SetInsideColor(c)
}

// SetOutsideColor changes the outside color; a different value resets.
func (a *App) SetOutsideColor(c montepi.Color) error {
	a.outside = [3]uint8{c.R, c.G, c.B}
	return a.sim.SetOutsideColor(c)
}

// Snapshot writes the current display buffer to the snapshot directory.
func (a *App) Snapshot() (string, error) {
	path, err := snapshot.SaveSimulation(a.sim, a.snapshotDir, a.snapshotFormat)
	if err != nil {
		return "", err
	}
	a.lastSnapshot = path
	return path, nil
}

// HandleKey applies a keyboard shortcut. Unbound keys are ignored.
func (a *App) HandleKey(ev ui.KeyEvent) error {
	switch k := ev.Key; {
	case k == gpucontext.KeySpace:
		a.TogglePlay()
	case k == gpucontext.KeyR:
		return a.Reset()
	case k >= gpucontext.Key1 && k <= gpucontext.Key6:
		return a.SelectPreset(int(k - gpucontext.Key1))
	case k == gpucontext.KeyUp:
		a.SetPointsPerFrame(a.pointsPerFrame + keyStep(ev.Mods))
	case k == gpucontext.KeyDown:
		a.SetPointsPerFrame(a.pointsPerFrame - keyStep(ev.Mods))
	case k == gpucontext.KeyS:
		_, err := a.Snapshot()
		return err
	}
	return nil
}

func keyStep(mods gpucontext.Modifiers) int {
	if mods.HasShift() {
		return pointsShiftStep
	}
	return pointsStep
}

// Update advances the frame clock and, while running, samples, resolves and
// uploads one frame.
func (a *App) Update(now time.Time) error {
	a.timer.Tick(now)
	if !a.running {
		return nil
	}
	return a.sim.Frame(a.pointsPerFrame)
}

// Frame handles the input of one frame, updates the simulation and draws the
// whole window into dc. Action errors are logged and do not stop the frame.
func (a *App) Frame(dc *gg.Context, face text.Face, in ui.Frame, now time.Time) {
	for _, ev := range in.Keys {
		if err := a.HandleKey(ev); err != nil {
			montepi.Logger().Warn("app: key action failed", "key", ev.Key, "error", err)
		}
	}
	if err := a.Update(now); err != nil {
		montepi.Logger().Warn("app: frame update failed", "error", err)
	}
	a.Draw(dc, face, in)
}

// Draw lays out the viewport and properties panels over the full context.
func (a *App) Draw(dc *gg.Context, face text.Face, in ui.Frame) {
	dc.ClearWithColor(a.theme.Clear)

	window := ui.Rect{W: float64(dc.Width()), H: float64(dc.Height())}.Inset(margin)
	viewport, props := window.SplitRight(min(propertiesWidth, window.W*0.45))
	viewport.W = max(0, viewport.W-margin)

	vp := ui.Begin(dc, &a.theme, face, &a.state, &in, "Viewport", viewport)
	a.tex.Draw(dc, vp.Content())
	vp.End()

	p := ui.Begin(dc, &a.theme, face, &a.state, &in, "Properties", props)
	a.drawProperties(p, in)
	p.End()
}

func (a *App) drawProperties(p *ui.Panel, in ui.Frame) {
	log := montepi.Logger()

	p.Text("Texture Size:")
	sel := a.preset
	if p.Choice("size", montepi.PresetNames(), &sel) {
		if err := a.SelectPreset(sel); err != nil {
			log.Warn("app: select preset", "preset", sel, "error", err)
		}
	}

	label := "Pause"
	if !a.running {
		label = "Play"
	}
	if p.Button("play", label) {
		a.TogglePlay()
	}
	p.SameLine()
	if p.Button("reset", "Reset") {
		if err := a.Reset(); err != nil {
			log.Warn("app: reset", "error", err)
		}
	}
	p.SameLine()
	if p.Button("snapshot", "Snapshot") {
		if _, err := a.Snapshot(); err != nil {
			log.Warn("app: snapshot", "error", err)
		}
	}

	p.Text("Points per frame:")
	n := a.pointsPerFrame
	side := a.theme.FrameHeight()
	sliderW := max(p.Avail()-2*(side+a.theme.ItemSpacingX), a.theme.GrabMinSize*4)
	p.SliderInt("ppf", &n, montepi.MinPointsPerFrame, montepi.MaxPointsPerFrame, sliderW)
	p.SameLine()
	p.Stepper("ppf-step", &n, montepi.MinPointsPerFrame, montepi.MaxPointsPerFrame, keyStep(shiftMods(in.Shift)))
	a.SetPointsPerFrame(n)

	p.Separator()

	p.Text("Colors:")
	if rgb := a.inside; p.ColorEdit("inside", "Inside Circle", &rgb) {
		if err := a.SetInsideColor(montepi.Color{R: rgb[0], G: rgb[1], B: rgb[2]}); err != nil {
			log.Warn("app: inside color", "error", err)
		}
	}
	if rgb := a.outside; p.ColorEdit("outside", "Outside Circle", &rgb) {
		if err := a.SetOutsideColor(montepi.Color{R: rgb[0], G: rgb[1], B: rgb[2]}); err != nil {
			log.Warn("app: outside color", "error", err)
		}
	}

	p.Separator()

	p.Text(TimingLine(&a.timer))
	p.Text(TextureLine(a.tex.Size()))

	p.Separator()

	for _, line := range StatsLines(a.sim.Stats()) {
		p.Text(line)
	}

	p.Separator()
	p.TextDisabled("Space play/pause, R reset, 1-6 size, Up/Down points, S snapshot")
	if a.lastSnapshot != "" {
		p.TextDisabled("Saved " + a.lastSnapshot)
	}
}

func shiftMods(shift bool) gpucontext.Modifiers {
	if shift {
		return gpucontext.ModShift
	}
	return 0
}
