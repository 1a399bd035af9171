package montepi

import "math"

// Stats is a snapshot of the sample counters.
type Stats struct {
	Total  uint64
	Inside uint64
}

// Outside returns the number of samples outside the circle.
func (s Stats) Outside() uint64 {
	return s.Total - s.Inside
}

// Ratio returns Inside/Total, or 0 before the first sample.
func (s Stats) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Inside) / float64(s.Total)
}

// Estimate returns the current π estimate, 4 * Ratio.
func (s Stats) Estimate() float64 {
	return s.Ratio() * 4
}

// AbsError returns |Estimate - ActualPi|.
func (s Stats) AbsError() float64 {
	return math.Abs(s.Estimate() - ActualPi)
}

// PercentError returns AbsError relative to ActualPi, in percent.
func (s Stats) PercentError() float64 {
	return s.AbsError() / ActualPi * 100
}
