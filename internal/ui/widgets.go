package ui

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// State is the widget state that outlives a single frame.
type State struct {
	// Active is the id of the widget holding the mouse, or "".
	Active string

	scroll map[string]scrollState
}

type scrollState struct {
	offset float64
	max    float64 // from the previous frame's layout
}

// Scroll returns the vertical scroll offset of the named panel.
func (s *State) Scroll(panel string) float64 {
	return s.scroll[panel].offset
}

func (s *State) scrollOf(panel string) scrollState {
	return s.scroll[panel]
}

func (s *State) setScroll(panel string, st scrollState) {
	if s.scroll == nil {
		s.scroll = make(map[string]scrollState)
	}
	st.offset = max(0, min(st.offset, st.max))
	s.scroll[panel] = st
}

// Panel lays widgets out top to bottom inside a titled, rounded box.
// Widget ids must be unique within a frame.
type Panel struct {
	dc    *gg.Context
	theme *Theme
	state *State
	in    *Frame

	title   string
	bounds  Rect
	content Rect

	top       float64 // content top before scrolling
	nextY     float64
	lineTop   float64
	lineH     float64
	lineRight float64
	sameLine  bool
}

// Begin draws the panel frame and title and starts laying out widgets.
// End must be called when the panel is complete.
func Begin(dc *gg.Context, theme *Theme, face text.Face, st *State, in *Frame, title string, bounds Rect) *Panel {
	p := &Panel{
		dc:     dc,
		theme:  theme,
		state:  st,
		in:     in,
		title:  title,
		bounds: bounds,
	}

	dc.SetFont(face)

	dc.SetColor(theme.PanelBg)
	dc.DrawRoundedRectangle(bounds.X, bounds.Y, bounds.W, bounds.H, theme.PanelRounding)
	_ = dc.Fill()
	if theme.BorderWidth > 0 {
		dc.SetColor(theme.Border)
		dc.SetLineWidth(theme.BorderWidth)
		dc.DrawRoundedRectangle(bounds.X+0.5, bounds.Y+0.5, bounds.W-1, bounds.H-1, theme.PanelRounding)
		_ = dc.Stroke()
	}

	titleBar, body := bounds.SplitTop(theme.TitleHeight)
	dc.SetColor(theme.TitleBg)
	dc.DrawRoundedRectangle(titleBar.X, titleBar.Y, titleBar.W, titleBar.H, theme.PanelRounding)
	_ = dc.Fill()
	dc.SetColor(theme.Text)
	dc.DrawStringAnchored(title, titleBar.X+theme.PanelPadding, titleBar.Y+titleBar.H/2, 0, 0.5)

	p.content = body.Inset(theme.PanelPadding)

	if in.Scroll != 0 && bounds.Contains(in.MouseX, in.MouseY) {
		sc := st.scrollOf(title)
		sc.offset -= in.Scroll * theme.FrameHeight()
		st.setScroll(title, sc)
	}
	p.top = p.content.Y
	p.nextY = p.content.Y - st.Scroll(title)

	dc.Push()
	dc.ClipRect(p.content.X, p.content.Y, p.content.W, p.content.H)
	return p
}

// Content returns the area available to widgets.
func (p *Panel) Content() Rect { return p.content }

// End restores the clip, clamps the scroll offset to the laid out height and
// releases a mouse grab that ended this frame.
func (p *Panel) End() {
	p.dc.Pop()

	sc := p.state.scrollOf(p.title)
	used := p.nextY + sc.offset - p.top
	sc.max = max(0, used-p.content.H)
	p.state.setScroll(p.title, sc)

	if p.in.Released || !p.in.MouseDown {
		p.state.Active = ""
	}
}

// SameLine places the next widget to the right of the previous one.
func (p *Panel) SameLine() { p.sameLine = true }

// Avail returns the width left on the current line for the next widget.
func (p *Panel) Avail() float64 {
	if p.sameLine {
		return max(0, p.content.X+p.content.W-p.lineRight-p.theme.ItemSpacingX)
	}
	return p.content.W
}

// next reserves a w x h slot for the next widget.
func (p *Panel) next(w, h float64) Rect {
	var r Rect
	if p.sameLine {
		r = Rect{X: p.lineRight + p.theme.ItemSpacingX, Y: p.lineTop, W: w, H: h}
		p.lineH = max(p.lineH, h)
		p.sameLine = false
	} else {
		p.lineTop = p.nextY
		p.lineH = h
		r = Rect{X: p.content.X, Y: p.lineTop, W: w, H: h}
	}
	p.lineRight = r.X + r.W
	p.nextY = p.lineTop + p.lineH + p.theme.ItemSpacingY
	return r
}

// behavior runs the press/release logic shared by all interactive widgets.
func (p *Panel) behavior(id string, r Rect) (hovered, held, clicked bool) {
	hovered = r.Contains(p.in.MouseX, p.in.MouseY) &&
		p.content.Contains(p.in.MouseX, p.in.MouseY)
	if hovered && p.in.Pressed && p.state.Active == "" {
		p.state.Active = id
	}
	held = p.state.Active == id
	if held && p.in.Released {
		clicked = hovered
	}
	return hovered, held, clicked
}

func (p *Panel) fillRect(r Rect, radius float64, c gg.RGBA) {
	p.dc.SetColor(c)
	if radius > 0 {
		p.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	} else {
		p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	}
	_ = p.dc.Fill()
}

func (p *Panel) label(s string, x, y float64, ax float64, c gg.RGBA) {
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(s, x, y, ax, 0.5)
}

// Text draws one line of text.
func (p *Panel) Text(s string) {
	w, _ := p.dc.MeasureString(s)
	r := p.next(w, p.theme.FrameHeight())
	p.label(s, r.X, r.Y+r.H/2, 0, p.theme.Text)
}

// TextDisabled draws one line in the dimmed text color.
func (p *Panel) TextDisabled(s string) {
	w, _ := p.dc.MeasureString(s)
	r := p.next(w, p.theme.FrameHeight())
	p.label(s, r.X, r.Y+r.H/2, 0, p.theme.TextDisabled)
}

// Separator draws a horizontal rule across the panel.
func (p *Panel) Separator() {
	p.sameLine = false
	r := p.next(p.content.W, 1)
	p.fillRect(r, 0, p.theme.Separator)
}

// Button draws a push button sized to its label and reports a click.
func (p *Panel) Button(id, label string) bool {
	w, _ := p.dc.MeasureString(label)
	return p.button(id, label, w+2*p.theme.FramePadX, false)
}

func (p *Panel) button(id, label string, w float64, selected bool) bool {
	r := p.next(w, p.theme.FrameHeight())
	hovered, held, clicked := p.behavior(id, r)

	bg := pick(p.theme.Button, p.theme.ButtonHovered, p.theme.ButtonActive, hovered, held || selected)
	p.fillRect(r, p.theme.FrameRounding, bg)
	p.label(label, r.X+r.W/2, r.Y+r.H/2, 0.5, p.theme.Text)
	return clicked
}

// Choice draws one toggle button per item, wrapping onto new lines, and
// stores the clicked index in sel. It reports whether sel changed.
func (p *Panel) Choice(id string, items []string, sel *int) bool {
	changed := false
	for i, item := range items {
		w, _ := p.dc.MeasureString(item)
		w += 2 * p.theme.FramePadX
		if i > 0 && w <= p.lineAvailAfter() {
			p.SameLine()
		}
		if p.button(fmt.Sprintf("%s#%d", id, i), item, w, i == *sel) && i != *sel {
			*sel = i
			changed = true
		}
	}
	return changed
}

// lineAvailAfter is the width left to the right of the last widget.
func (p *Panel) lineAvailAfter() float64 {
	return p.content.X + p.content.W - p.lineRight - p.theme.ItemSpacingX
}

// SliderInt draws a horizontal slider of width w bound to [lo, hi]. Dragging
// or scrolling over it changes *v. It reports whether *v changed.
func (p *Panel) SliderInt(id string, v *int, lo, hi int, w float64) bool {
	r := p.next(w, p.theme.FrameHeight())
	return p.slider(id, v, lo, hi, r, "")
}

// slider draws the value prefixed by prefix on top of the track.
func (p *Panel) slider(id string, v *int, lo, hi int, r Rect, prefix string) bool {
	hovered, held, _ := p.behavior(id, r)
	old := *v

	grab := p.theme.GrabMinSize
	track := max(r.W-2-grab, 1)
	if held && hi > lo {
		t := (p.in.MouseX - r.X - 1 - grab/2) / track
		t = max(0, min(t, 1))
		*v = lo + int(math.Round(t*float64(hi-lo)))
	} else if hovered && p.in.Scroll != 0 {
		if p.in.Scroll > 0 {
			*v++
		} else {
			*v--
		}
	}
	*v = max(lo, min(*v, hi))

	p.fillRect(r, p.theme.FrameRounding, pick(p.theme.Frame, p.theme.FrameHovered, p.theme.FrameActive, hovered, held))

	t := 0.0
	if hi > lo {
		t = float64(*v-lo) / float64(hi-lo)
	}
	g := Rect{X: r.X + 1 + t*track, Y: r.Y + 2, W: grab, H: r.H - 4}
	gc := p.theme.SliderGrab
	if held {
		gc = p.theme.SliderGrabActive
	}
	p.fillRect(g, p.theme.GrabRounding, gc)

	p.label(prefix+fmt.Sprint(*v), r.X+r.W/2, r.Y+r.H/2, 0.5, p.theme.Text)
	return *v != old
}

// Stepper draws "-" and "+" buttons that move *v by step within [lo, hi].
func (p *Panel) Stepper(id string, v *int, lo, hi, step int) bool {
	old := *v
	side := p.theme.FrameHeight()
	if p.button(id+"#dec", "-", side, false) {
		*v -= step
	}
	p.SameLine()
	if p.button(id+"#inc", "+", side, false) {
		*v += step
	}
	*v = max(lo, min(*v, hi))
	return *v != old
}

// ColorEdit draws a swatch followed by red, green and blue sliders and the
// label. It reports whether any channel changed.
func (p *Panel) ColorEdit(id, label string, rgb *[3]uint8) bool {
	side := p.theme.FrameHeight()
	lw, _ := p.dc.MeasureString(label)

	swatch := p.next(side, side)
	p.fillRect(swatch, p.theme.FrameRounding, gg.RGB(
		float64(rgb[0])/255, float64(rgb[1])/255, float64(rgb[2])/255))

	sp := p.theme.ItemSpacingX
	avail := p.content.X + p.content.W - p.lineRight - sp - lw - sp
	w := max((avail-2*sp)/3, p.theme.GrabMinSize*3)

	changed := false
	for i, name := range [...]string{"R", "G", "B"} {
		p.SameLine()
		r := p.next(w, side)
		c := int(rgb[i])
		if p.slider(id+"#"+name, &c, 0, 255, r, name+":") {
			rgb[i] = uint8(c)
			changed = true
		}
	}

	p.SameLine()
	r := p.next(lw, side)
	p.label(label, r.X, r.Y+r.H/2, 0, p.theme.Text)
	return changed
}
