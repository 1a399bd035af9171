package app

import (
	"github.com/gogpu/montepi"
	"github.com/gogpu/montepi/internal/config"
	"github.com/gogpu/montepi/internal/snapshot"
)

// RunHeadless runs frames simulation frames without a window, exactly as the
// window would while running, and writes the final bitmap to out when out is
// not empty.
func RunHeadless(cfg config.Config, frames int, out string) (montepi.Stats, error) {
	inside, outside, err := cfg.Colors()
	if err != nil {
		return montepi.Stats{}, err
	}

	size := cfg.TextureSize()
	sim, err := montepi.New(size, size,
		montepi.WithSeed(cfg.Seed),
		montepi.WithColors(inside, outside),
	)
	if err != nil {
		return montepi.Stats{}, err
	}

	ppf := montepi.ClampPointsPerFrame(cfg.PointsPerFrame)
	for range frames {
		if err := sim.Frame(ppf); err != nil {
			return sim.Stats(), err
		}
	}
	montepi.Logger().Info("headless run finished", "frames", frames, "size", montepi.PresetName(cfg.Preset),
		"total", sim.Stats().Total)

	if out == "" {
		return sim.Stats(), nil
	}
	img, err := snapshot.FromPacked(sim.Pixels(), sim.Width(), sim.Height())
	if err != nil {
		return sim.Stats(), err
	}
	return sim.Stats(), snapshot.Save(out, img)
}
