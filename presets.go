package montepi

import "fmt"

// Points-per-frame bounds and default.
const (
	MinPointsPerFrame     = 1
	MaxPointsPerFrame     = 1000
	DefaultPointsPerFrame = 10
)

// ActualPi is the reference value the estimate is compared against.
const ActualPi = 3.141592653589793

// TextureSizes lists the selectable square texture edge lengths.
var TextureSizes = [...]int{8, 16, 32, 64, 512, 1024}

// DefaultPreset indexes TextureSizes (512x512).
const DefaultPreset = 4

// PresetName returns a label such as "512x512" for a preset index.
func PresetName(i int) string {
	if i < 0 || i >= len(TextureSizes) {
		return "?"
	}
	return fmt.Sprintf("%dx%d", TextureSizes[i], TextureSizes[i])
}

// PresetNames returns the labels of all presets in order.
func PresetNames() []string {
	names := make([]string, len(TextureSizes))
	for i := range TextureSizes {
		names[i] = PresetName(i)
	}
	return names
}

// ClampPointsPerFrame bounds n to [MinPointsPerFrame, MaxPointsPerFrame].
func ClampPointsPerFrame(n int) int {
	return max(MinPointsPerFrame, min(n, MaxPointsPerFrame))
}
