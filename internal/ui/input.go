package ui

import (
	"sync"

	"github.com/gogpu/gpucontext"
)

// KeyEvent is a key press recorded between two frames.
type KeyEvent struct {
	Key  gpucontext.Key
	Mods gpucontext.Modifiers
}

// Frame is the input consumed by one frame. Pressed and Released are edges
// that happened since the previous frame; both may be set for a quick click.
type Frame struct {
	MouseX, MouseY float64
	MouseDown      bool
	Pressed        bool
	Released       bool
	Scroll         float64
	Shift          bool
	Keys           []KeyEvent
}

// Input records window events and hands them to the frame loop one frame at
// a time. Event callbacks and EndFrame may run on different goroutines.
type Input struct {
	mu      sync.Mutex
	pending Frame
}

// Attach registers the recording callbacks on src.
func (in *Input) Attach(src gpucontext.EventSource) {
	src.OnMouseMove(func(x, y float64) {
		in.mu.Lock()
		in.pending.MouseX, in.pending.MouseY = x, y
		in.mu.Unlock()
	})
	src.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		if button != gpucontext.MouseButtonLeft {
			return
		}
		in.mu.Lock()
		in.pending.MouseX, in.pending.MouseY = x, y
		in.pending.MouseDown = true
		in.pending.Pressed = true
		in.mu.Unlock()
	})
	src.OnMouseRelease(func(button gpucontext.MouseButton, x, y float64) {
		if button != gpucontext.MouseButtonLeft {
			return
		}
		in.mu.Lock()
		in.pending.MouseX, in.pending.MouseY = x, y
		in.pending.MouseDown = false
		in.pending.Released = true
		in.mu.Unlock()
	})
	src.OnScroll(func(_, dy float64) {
		in.mu.Lock()
		in.pending.Scroll += dy
		in.mu.Unlock()
	})
	src.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		in.mu.Lock()
		in.pending.Shift = mods.HasShift()
		in.pending.Keys = append(in.pending.Keys, KeyEvent{Key: key, Mods: mods})
		in.mu.Unlock()
	})
	src.OnKeyRelease(func(_ gpucontext.Key, mods gpucontext.Modifiers) {
		in.mu.Lock()
		in.pending.Shift = mods.HasShift()
		in.mu.Unlock()
	})
	src.OnFocus(func(focused bool) {
		if focused {
			return
		}
		// Releases outside the window are never delivered.
		in.mu.Lock()
		if in.pending.MouseDown {
			in.pending.MouseDown = false
			in.pending.Released = true
		}
		in.pending.Shift = false
		in.mu.Unlock()
	})
}

// EndFrame returns everything recorded since the previous call and clears the
// edge events. Mouse position, button and modifier state carry over.
func (in *Input) EndFrame() Frame {
	in.mu.Lock()
	defer in.mu.Unlock()

	f := in.pending
	in.pending.Pressed = false
	in.pending.Released = false
	in.pending.Scroll = 0
	in.pending.Keys = nil
	return f
}
