package geom

// CubicBez is a cubic Bezier segment defined by four control points.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// arcSamples is the fixed sampling resolution used to approximate arc
// length. 800 samples keep the worst-case parameter error well below the
// manufacturing tolerances of a PCB while the table still builds in
// microseconds.
const arcSamples = 800

// Eval returns the point on the curve at parameter t in [0, 1],
// evaluated in Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*c.P0.X + 3*u*u*t*c.P1.X + 3*u*t*t*c.P2.X + t*t*t*c.P3.X,
		Y: u*u*u*c.P0.Y + 3*u*u*t*c.P1.Y + 3*u*t*t*c.P2.Y + t*t*t*c.P3.Y,
	}
}

// Tangent returns the first derivative of the curve at parameter t.
// The vector is not normalized; its angle gives the curve direction.
func (c CubicBez) Tangent(t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: 3*u*u*(c.P1.X-c.P0.X) + 6*u*t*(c.P2.X-c.P1.X) + 3*t*t*(c.P3.X-c.P2.X),
		Y: 3*u*u*(c.P1.Y-c.P0.Y) + 6*u*t*(c.P2.Y-c.P1.Y) + 3*t*t*(c.P3.Y-c.P2.Y),
	}
}

// Flatten returns n+1 points sampled at uniform parameter steps, suitable
// for drawing the curve as a polyline.
func (c CubicBez) Flatten(n int) []Point {
	if n < 1 {
		return []Point{c.Eval(0)}
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.Eval(float64(i) / float64(n))
	}
	return pts
}

// DivideByArcLength returns count parameter values splitting the curve
// into segments of equal arc length.
func (c CubicBez) DivideByArcLength(count int) []float64 {
	return c.DivideByDistances(count, nil)
}

// DivideByDistances maps cumulative target distances along the curve to
// parameter values.
//
// # Algorithm
//
// The curve is sampled at a fixed resolution to build a monotonic
// piecewise-linear cumulative arc-length table over the sample index. Each
// target distance is resolved with a lower-bound binary search for the
// first sample whose cumulative length reaches it; the sample index is
// converted back to a parameter by linear proportion.
//
// When dists is nil, targets are implied equally spaced over the total
// length. Otherwise dists must have count entries, non-decreasing and
// starting at zero; they are rescaled proportionally so the last entry
// matches the sampled total length. A degenerate curve whose sampled
// length is zero maps every target to t=0.
//
// count <= 1 returns [0]. The result is non-decreasing with first value 0
// and last value 1 (within sample resolution).
func (c CubicBez) DivideByDistances(count int, dists []float64) []float64 {
	if count <= 1 {
		return []float64{0}
	}

	lengths := make([]float64, arcSamples)
	total := 0.0
	prev := c.Eval(0)
	for i := 1; i < arcSamples; i++ {
		pt := c.Eval(float64(i) / float64(arcSamples-1))
		total += pt.Distance(prev)
		lengths[i] = total
		prev = pt
	}

	targets := make([]float64, count)
	if dists == nil {
		for k := range targets {
			targets[k] = total * float64(k) / float64(count-1)
		}
	} else {
		// Rescale so the last supplied distance lands on the sampled total.
		last := dists[len(dists)-1]
		if last <= 0 {
			last = 1
		}
		for k, d := range dists {
			targets[k] = d / last * total
		}
	}

	ts := make([]float64, count)
	for k, target := range targets {
		lo, hi := 0, arcSamples-1
		for lo < hi {
			mid := (lo + hi) / 2
			if lengths[mid] < target {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		ts[k] = float64(lo) / float64(arcSamples-1)
	}
	return ts
}
