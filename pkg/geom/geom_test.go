package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestVecRotate(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		rad  float64
		want Vec2
	}{
		{"quarter turn", Vec(1, 0), math.Pi / 2, Vec(0, 1)},
		{"half turn", Vec(1, 0), math.Pi, Vec(-1, 0)},
		{"full turn", Vec(3, 4), 2 * math.Pi, Vec(3, 4)},
		{"zero", Vec(3, 4), 0, Vec(3, 4)},
		{"diagonal", Vec(1, 1), -math.Pi / 2, Vec(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.rad)
			if d := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
				t.Errorf("Rotate mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi / 4)
	want := Vec(math.Sqrt2/2, math.Sqrt2/2)
	if d := cmp.Diff(want, v, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("FromAngle mismatch (-want +got):\n%s", d)
	}
	if got := v.Angle(); math.Abs(got-math.Pi/4) > 1e-12 {
		t.Errorf("Angle() = %v, want %v", got, math.Pi/4)
	}
}

func TestFrameFlipInvolutive(t *testing.T) {
	pts := []Point{
		Pt(0, 0),
		Pt(100, -50),
		Pt(-3.25, 19.05),
		Pt(1e-9, -1e-9),
	}
	for _, p := range pts {
		if got := BoardToMath(MathToBoard(p)); got != p {
			t.Errorf("BoardToMath(MathToBoard(%v)) = %v, want %v", p, got, p)
		}
		if got := MathToBoard(BoardToMath(p)); got != p {
			t.Errorf("MathToBoard(BoardToMath(%v)) = %v, want %v", p, got, p)
		}
	}
}

// sagCurve builds the control points the row engine uses: endpoints level,
// inner points a third in from each end, dropped by 4/3 of the sag.
func sagCurve(rowLen, sag float64) CubicBez {
	beta := 4.0 / 3.0 * -sag
	return CubicBez{
		P0: Pt(0, 0),
		P1: Pt(rowLen/3, beta),
		P2: Pt(2*rowLen/3, beta),
		P3: Pt(rowLen, 0),
	}
}

func TestBezierEval(t *testing.T) {
	c := sagCurve(100, 20)

	if got := c.Eval(0); got != c.P0 {
		t.Errorf("Eval(0) = %v, want %v", got, c.P0)
	}
	if got := c.Eval(1); got != c.P3 {
		t.Errorf("Eval(1) = %v, want %v", got, c.P3)
	}

	// With control points dropped by beta = 4/3*(-sag), the midpoint of the
	// curve sits exactly sag below the endpoints.
	mid := c.Eval(0.5)
	if math.Abs(mid.Y - -20) > 1e-12 {
		t.Errorf("Eval(0.5).Y = %v, want -20", mid.Y)
	}
	if math.Abs(mid.X-50) > 1e-12 {
		t.Errorf("Eval(0.5).X = %v, want 50", mid.X)
	}
}

func TestBezierTangentMatchesNumericalDerivative(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(10, -30), Pt(80, -25), Pt(100, 5)}
	const eps = 1e-6
	for _, tv := range []float64{0.01, 0.2, 0.5, 0.77, 0.99} {
		got := c.Tangent(tv)
		ahead := c.Eval(tv + eps)
		behind := c.Eval(tv - eps)
		want := ahead.Sub(behind).Mul(1 / (2 * eps))
		if d := cmp.Diff(want, got, cmpopts.EquateApprox(1e-4, 1e-4)); d != "" {
			t.Errorf("t=%v tangent mismatch (-numeric +analytic):\n%s", tv, d)
		}
	}
}

func TestFlatten(t *testing.T) {
	c := sagCurve(100, 20)
	pts := c.Flatten(100)
	if len(pts) != 101 {
		t.Fatalf("len = %d, want 101", len(pts))
	}
	if pts[0] != c.P0 || pts[100] != c.P3 {
		t.Errorf("endpoints = %v, %v, want %v, %v", pts[0], pts[100], c.P0, c.P3)
	}
}

func TestDivideByDistances(t *testing.T) {
	line := CubicBez{Pt(0, 0), Pt(100.0 / 3, 0), Pt(200.0 / 3, 0), Pt(100, 0)}

	t.Run("single point", func(t *testing.T) {
		got := line.DivideByDistances(1, nil)
		if d := cmp.Diff([]float64{0}, got); d != "" {
			t.Errorf("mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("equal spacing on a line", func(t *testing.T) {
		got := line.DivideByDistances(5, nil)
		want := []float64{0, 0.25, 0.5, 0.75, 1}
		if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 2.0/799)); d != "" {
			t.Errorf("mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("supplied distances on a line", func(t *testing.T) {
		got := line.DivideByDistances(3, []float64{0, 25, 100})
		want := []float64{0, 0.25, 1}
		if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 2.0/799)); d != "" {
			t.Errorf("mismatch (-want +got):\n%s", d)
		}
	})

	t.Run("monotone on a sagging curve", func(t *testing.T) {
		c := sagCurve(95.25, 20)
		ts := c.DivideByDistances(5, []float64{0, 19.05, 38.1, 57.15, 76.2})
		if ts[0] != 0 {
			t.Errorf("ts[0] = %v, want 0", ts[0])
		}
		if ts[len(ts)-1] != 1 {
			t.Errorf("ts[last] = %v, want 1", ts[len(ts)-1])
		}
		for i := 1; i < len(ts); i++ {
			if ts[i] < ts[i-1] {
				t.Errorf("ts not monotone at %d: %v < %v", i, ts[i], ts[i-1])
			}
		}
	})

	t.Run("degenerate point curve", func(t *testing.T) {
		point := CubicBez{Pt(5, 5), Pt(5, 5), Pt(5, 5), Pt(5, 5)}
		got := point.DivideByDistances(4, []float64{0, 1, 2, 3})
		if d := cmp.Diff([]float64{0, 0, 0, 0}, got); d != "" {
			t.Errorf("mismatch (-want +got):\n%s", d)
		}
	})
}

func TestCornerPoint(t *testing.T) {
	tests := []struct {
		name   string
		corner Corner
		angle  float64
		want   Point
	}{
		{"UL unrotated", UpperLeft, 0, Pt(-5, 2)},
		{"UR unrotated", UpperRight, 0, Pt(5, 2)},
		{"LL unrotated", LowerLeft, 0, Pt(-5, -2)},
		{"LR unrotated", LowerRight, 0, Pt(5, -2)},
		{"UL half turn", UpperLeft, math.Pi, Pt(5, -2)},
		{"LR half turn", LowerRight, math.Pi, Pt(-5, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CornerPoint(Pt(0, 0), 10, 4, tt.angle, tt.corner)
			if d := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
				t.Errorf("mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestLowerUpperCorners(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		wantLower [2]Corner
		wantUpper [2]Corner
	}{
		{"level", 0, [2]Corner{LowerLeft, LowerRight}, [2]Corner{UpperLeft, UpperRight}},
		{"slight tilt", 0.1, [2]Corner{LowerLeft, LowerRight}, [2]Corner{UpperLeft, UpperRight}},
		{"half turn", math.Pi, [2]Corner{UpperLeft, UpperRight}, [2]Corner{LowerLeft, LowerRight}},
		{"quarter turn", math.Pi / 2, [2]Corner{LowerLeft, UpperLeft}, [2]Corner{LowerRight, UpperRight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, upper := LowerUpperCorners(tt.angle, 19.05, 19.05)
			if lower != tt.wantLower {
				t.Errorf("lower = %v, want %v", lower, tt.wantLower)
			}
			if upper != tt.wantUpper {
				t.Errorf("upper = %v, want %v", upper, tt.wantUpper)
			}
		})
	}
}

func TestRectCorners(t *testing.T) {
	got := RectCorners(Pt(10, 10), 4, 2, 0)
	want := [4]Point{Pt(8, 9), Pt(12, 9), Pt(12, 11), Pt(8, 11)}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}
