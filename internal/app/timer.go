package app

import "time"

// frameWindow is the number of frames averaged by FrameTimer.
const frameWindow = 120

// FrameTimer keeps a rolling average of recent frame durations.
type FrameTimer struct {
	samples [frameWindow]time.Duration
	n       int
	next    int
	sum     time.Duration
	last    time.Time
}

// Tick records the time since the previous Tick and returns it. The first
// call only starts the clock and returns 0.
func (t *FrameTimer) Tick(now time.Time) time.Duration {
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	d := now.Sub(t.last)
	t.last = now
	t.Add(d)
	return d
}

// Add records one frame duration.
func (t *FrameTimer) Add(d time.Duration) {
	if t.n == frameWindow {
		t.sum -= t.samples[t.next]
	} else {
		t.n++
	}
	t.samples[t.next] = d
	t.sum += d
	t.next = (t.next + 1) % frameWindow
}

// Average returns the mean recorded frame time, or 0 with no samples.
func (t *FrameTimer) Average() time.Duration {
	if t.n == 0 {
		return 0
	}
	return t.sum / time.Duration(t.n)
}

// FPS returns frames per second derived from Average.
func (t *FrameTimer) FPS() float64 {
	avg := t.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
