package curve

import "math"

// Point represents a cartesian X,Y point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is a piecewise-linear curve defined by points with ascending X
// values. It is used for the storage-surface breakpoints in the optimizer
// and for the optional OXPH discharge lookup table.
type Curve struct {
	Points []Point `json:"points"`
}

// ValueAt returns the linearly interpolated y-value at `x`.
// NaN is returned if `x` is outside the horizontal span of the curve.
func (c *Curve) ValueAt(x float64) float64 {
	for i := 0; i < len(c.Points)-1; i++ {
		p1 := c.Points[i]
		p2 := c.Points[i+1]
		if p1.X <= x && x <= p2.X {
			return linearInterpolation(p1, p2, x)
		}
	}
	return math.NaN()
}

// Sample builds a piecewise-linear approximation of `fn` over [lo, hi] using
// `n` evenly spaced breakpoints. If hi <= lo the span is widened to one unit,
// which keeps a degenerate band solvable.
func Sample(fn func(float64) float64, lo, hi float64, n int) Curve {
	if hi <= lo {
		hi = lo + 1.0
	}
	if n < 2 {
		n = 2
	}
	points := make([]Point, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		points[i] = Point{X: x, Y: fn(x)}
	}
	return Curve{Points: points}
}

// linearInterpolation returns the y-value at `x` given two points.
func linearInterpolation(p1, p2 Point, x float64) float64 {
	return p1.Y + (x-p1.X)*((p2.Y-p1.Y)/(p2.X-p1.X))
}
