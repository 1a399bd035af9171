// Package config loads montepi settings from an optional JSON file and
// applies command-line overrides on top.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/montepi"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Snapshot formats understood by internal/snapshot.
var SnapshotFormats = []string{"png", "webp", "tga"}

// Config holds the window, simulation and output settings.
type Config struct {
	// Window
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`

	// Simulation
	Preset         int    `json:"preset"`
	PointsPerFrame int    `json:"points_per_frame"`
	Seed           uint32 `json:"seed"`
	InsideColor    string `json:"inside_color"`
	OutsideColor   string `json:"outside_color"`

	// Output
	SnapshotDir    string `json:"snapshot_dir"`
	SnapshotFormat string `json:"snapshot_format"`
	LogLevel       string `json:"log_level"`

	// seedOverride is a -seed value outside the uint32 range, kept for
	// Validate. Zero means none.
	seedOverride int64
}

// Default returns the compiled-in settings.
func Default() Config {
	return Config{
		Width:          1280,
		Height:         720,
		Title:          "Monte Carlo Pi",
		Preset:         montepi.DefaultPreset,
		PointsPerFrame: montepi.DefaultPointsPerFrame,
		Seed:           0,
		InsideColor:    montepi.DefaultInsideColor.Hex(),
		OutsideColor:   montepi.DefaultOutsideColor.Hex(),
		SnapshotDir:    ".",
		SnapshotFormat: "png",
		LogLevel:       "info",
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values and empty strings mean "not given"; Preset and Seed use -1.
type Flags struct {
	Width          int
	Height         int
	Title          string
	Preset         int
	PointsPerFrame int
	Seed           int64
	InsideColor    string
	OutsideColor   string
	SnapshotDir    string
	SnapshotFormat string
	LogLevel       string
}

// NoFlags returns a Flags value that overrides nothing.
func NoFlags() Flags {
	return Flags{Preset: -1, Seed: -1}
}

// Resolve applies flag overrides, then fills empty fields with defaults and
// clamps numeric ranges.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Title != "" {
		c.Title = flags.Title
	}
	if flags.Preset >= 0 {
		c.Preset = flags.Preset
	}
	if flags.PointsPerFrame > 0 {
		c.PointsPerFrame = flags.PointsPerFrame
	}
	switch {
	case flags.Seed > math.MaxUint32 || flags.Seed < -1:
		c.seedOverride = flags.Seed
	case flags.Seed >= 0:
		c.Seed = uint32(flags.Seed)
	}
	if flags.InsideColor != "" {
		c.InsideColor = flags.InsideColor
	}
	if flags.OutsideColor != "" {
		c.OutsideColor = flags.OutsideColor
	}
	if flags.SnapshotDir != "" {
		c.SnapshotDir = flags.SnapshotDir
	}
	if flags.SnapshotFormat != "" {
		c.SnapshotFormat = flags.SnapshotFormat
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	def := Default()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Preset < 0 || c.Preset >= len(montepi.TextureSizes) {
		c.Preset = def.Preset
	}
	c.PointsPerFrame = montepi.ClampPointsPerFrame(c.PointsPerFrame)
	if c.InsideColor == "" {
		c.InsideColor = def.InsideColor
	}
	if c.OutsideColor == "" {
		c.OutsideColor = def.OutsideColor
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = def.SnapshotDir
	}
	c.SnapshotFormat = strings.ToLower(strings.TrimPrefix(c.SnapshotFormat, "."))
	if c.SnapshotFormat == "" {
		c.SnapshotFormat = def.SnapshotFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.seedOverride != 0 {
		return fmt.Errorf("%w: seed %d (want 0 to %d)", ErrInvalid, c.seedOverride, uint32(math.MaxUint32))
	}
	if _, err := ParseColor(c.InsideColor); err != nil {
		return fmt.Errorf("inside_color: %w", err)
	}
	if _, err := ParseColor(c.OutsideColor); err != nil {
		return fmt.Errorf("outside_color: %w", err)
	}
	if !slices.Contains(SnapshotFormats, c.SnapshotFormat) {
		return fmt.Errorf("%w: snapshot_format %q (want one of %s)",
			ErrInvalid, c.SnapshotFormat, strings.Join(SnapshotFormats, ", "))
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Colors returns the parsed inside and outside sample colors.
func (c Config) Colors() (inside, outside montepi.Color, err error) {
	if inside, err = ParseColor(c.InsideColor); err != nil {
		return inside, outside, err
	}
	outside, err = ParseColor(c.OutsideColor)
	return inside, outside, err
}

// TextureSize returns the edge length of the configured preset.
func (c Config) TextureSize() int {
	return montepi.TextureSizes[c.Preset]
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// ParseColor parses a "#rgb" or "#rrggbb" string into an opaque sample color.
// Alpha, if present, is ignored.
func ParseColor(s string) (montepi.Color, error) {
	c, err := gg.ParseHex(s)
	if err != nil {
		return montepi.Color{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return montepi.Color{R: to8(c.R), G: to8(c.G), B: to8(c.B)}, nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(max(0, min(v, 1)) * 255))
}
