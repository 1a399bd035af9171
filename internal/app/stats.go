package app

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/montepi"
)

// numbers groups thousands in counters.
var numbers = message.NewPrinter(language.English)

// StatsLines renders the read-only statistics block. Error values read "N/A"
// until the first sample is drawn.
func StatsLines(s montepi.Stats) []string {
	lines := []string{
		"Monte Carlo Pi Estimation:",
		numbers.Sprintf("Total points: %d", s.Total),
		numbers.Sprintf("Points inside circle: %d", s.Inside),
		numbers.Sprintf("Points outside circle: %d", s.Outside()),
	}

	if s.Total == 0 {
		return append(lines,
			"Ratio (inside/total): 0.000000000000000",
			"Formula: Pi ≈ (inside/total) × 4",
			"Estimated Pi: 0.000000000000000",
			numbers.Sprintf("Actual Pi:    %.15f", montepi.ActualPi),
			"Error: N/A",
		)
	}

	return append(lines,
		numbers.Sprintf("Ratio (inside/total): %.15f", s.Ratio()),
		"Formula: Pi ≈ (inside/total) × 4",
		numbers.Sprintf("Estimated Pi: %.15f", s.Estimate()),
		numbers.Sprintf("Actual Pi:    %.15f", montepi.ActualPi),
		numbers.Sprintf("Error: %.15f (%.6f%%)", s.AbsError(), s.PercentError()),
	)
}

// TimingLine renders the frame time and FPS line.
func TimingLine(t *FrameTimer) string {
	ms := float64(t.Average().Microseconds()) / 1000
	return numbers.Sprintf("Application average %.3f ms/frame (%.1f FPS)", ms, t.FPS())
}

// TextureLine renders the texture size line.
func TextureLine(width, height int) string {
	return fmt.Sprintf("Texture size: %d x %d", width, height)
}
