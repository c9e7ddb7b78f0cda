package row

import (
	"math"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
)

// Angle profile keys. The profile eases the tangent-derived rotation as a
// function of distance from the row center.
const (
	// ProfileCosine fades rotation with cos(pi/2 * norm): full tangent at
	// the center, level at the ends.
	ProfileCosine = "cosine"
	// ProfileQuadratic fades rotation with 1 - norm^2.
	ProfileQuadratic = "quadratic"
	// ProfileBezier applies the raw tangent angle without easing.
	ProfileBezier = "bezier"
)

// rotOffsetDeg is a uniform rotation in degrees added to every slot after
// easing and flat clamping.
const rotOffsetDeg = 0.0

// ProfileFactor returns the easing factor for a profile at a normalized
// distance from the row center. The distance is clamped to [0, 1]. Any
// unrecognized key applies no easing (factor 1), which is also what
// [ProfileBezier] names; callers get the raw tangent rather than an error.
func ProfileFactor(profile string, norm float64) float64 {
	norm = math.Max(0, math.Min(1, norm))
	switch profile {
	case ProfileCosine:
		return math.Cos(math.Pi / 2 * norm)
	case ProfileQuadratic:
		return math.Max(0, 1-norm*norm)
	}
	return 1
}

// anglesFromTangents derives per-slot orientation from the curve tangents
// at the given parameters. raw holds the unmodified tangent angles, which
// the contact pass needs to track the curve direction; final holds the
// eased drawing angles with flat categories clamped level. Both are
// radians in the math frame.
func anglesFromTangents(ts []float64, curve geom.CubicBez, profile string, cats []Category) (raw, final []float64) {
	n := len(ts)
	raw = make([]float64, n)
	final = make([]float64, n)

	center := 0.0
	if n > 1 {
		center = float64(n-1) / 2
	}
	maxDist := center
	if maxDist <= 0 {
		maxDist = 1
	}

	for i, t := range ts {
		ang := curve.Tangent(t).Angle()
		raw[i] = ang

		if cats[i].IsFlat() {
			final[i] = 0
		} else {
			norm := math.Abs(float64(i)-center) / maxDist
			final[i] = ang * ProfileFactor(profile, norm)
		}
		final[i] += rotOffsetDeg * math.Pi / 180
	}
	return raw, final
}
