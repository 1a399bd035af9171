package ui

import "github.com/gogpu/gg"

// Theme holds the palette and metrics used by Panel widgets.
type Theme struct {
	// Clear is the window background behind all panels.
	Clear gg.RGBA

	Text         gg.RGBA
	TextDisabled gg.RGBA

	PanelBg gg.RGBA
	TitleBg gg.RGBA
	Border  gg.RGBA

	Frame        gg.RGBA
	FrameHovered gg.RGBA
	FrameActive  gg.RGBA

	Button        gg.RGBA
	ButtonHovered gg.RGBA
	ButtonActive  gg.RGBA

	SliderGrab       gg.RGBA
	SliderGrabActive gg.RGBA

	Separator gg.RGBA

	PanelRounding float64
	FrameRounding float64
	GrabRounding  float64
	GrabMinSize   float64
	BorderWidth   float64

	// Padding inside a panel and around widget text.
	PanelPadding float64
	FramePadX    float64
	FramePadY    float64

	// Spacing between consecutive widgets.
	ItemSpacingX float64
	ItemSpacingY float64

	FontSize    float64
	TitleHeight float64
}

// DarkTheme returns a grey-on-charcoal theme.
func DarkTheme() Theme {
	return Theme{
		Clear: gg.RGB(0.45, 0.55, 0.60),

		Text:         gg.RGB(0.80, 0.80, 0.80),
		TextDisabled: gg.RGB(0.50, 0.50, 0.50),

		PanelBg: gg.RGBA2(0.12, 0.12, 0.12, 0.95),
		TitleBg: gg.RGB(0.18, 0.18, 0.18),
		Border:  gg.RGBA2(0.25, 0.25, 0.25, 0.50),

		Frame:        gg.RGBA2(0.16, 0.16, 0.16, 0.95),
		FrameHovered: gg.RGBA2(0.20, 0.20, 0.20, 0.95),
		FrameActive:  gg.RGB(0.24, 0.24, 0.24),

		Button:        gg.RGBA2(0.20, 0.20, 0.20, 0.80),
		ButtonHovered: gg.RGB(0.25, 0.25, 0.25),
		ButtonActive:  gg.RGB(0.30, 0.30, 0.30),

		SliderGrab:       gg.RGB(0.35, 0.35, 0.35),
		SliderGrabActive: gg.RGB(0.40, 0.40, 0.40),

		Separator: gg.RGB(0.25, 0.25, 0.25),

		PanelRounding: 6,
		FrameRounding: 4,
		GrabRounding:  3,
		GrabMinSize:   12,
		BorderWidth:   1,

		PanelPadding: 12,
		FramePadX:    6,
		FramePadY:    4,

		ItemSpacingX: 8,
		ItemSpacingY: 6,

		FontSize:    15,
		TitleHeight: 26,
	}
}

// FrameHeight is the height of a single-line framed widget.
func (t Theme) FrameHeight() float64 {
	return t.FontSize + 2*t.FramePadY
}

// pick returns the idle, hovered or active variant.
func pick(idle, hovered, active gg.RGBA, isHovered, isActive bool) gg.RGBA {
	switch {
	case isActive:
		return active
	case isHovered:
		return hovered
	default:
		return idle
	}
}
