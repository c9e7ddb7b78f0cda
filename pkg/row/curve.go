package row

import (
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
)

const (
	// controlDrop scales the sag into the control point drop. A cubic with
	// horizontally-thirded control points lowered by 4/3 of the sag dips
	// exactly sag at its midpoint.
	controlDrop = 4.0 / 3.0

	// asymmetryShiftCap bounds how far unequal end widths pull the control
	// points toward the wider side: at most 15% of the row length.
	asymmetryShiftCap = 0.15

	// widthRatioEps guards the asymmetry ratio against a vanishing total
	// end width.
	widthRatioEps = 1e-6
)

// curveControls builds the row's Bezier between p0 and p3 (same Y). sag is
// the downward depth at the curve midpoint in millimeters. With asymmetric
// set, the ratio of the end slot widths shifts both control points toward
// the wider end; the vertical drop is unaffected.
func curveControls(p0, p3 geom.Point, sag, leftW, rightW float64, asymmetric bool) geom.CubicBez {
	rowLen := p3.X - p0.X
	beta := controlDrop * -sag
	const third = 1.0 / 3.0

	shift := 0.0
	if asymmetric {
		if total := leftW + rightW; total > widthRatioEps {
			shift = (leftW - rightW) / total * asymmetryShiftCap
		}
	}

	return geom.CubicBez{
		P0: p0,
		P1: geom.Pt(p0.X+rowLen*(third-shift), p0.Y+beta),
		P2: geom.Pt(p3.X-rowLen*(third+shift), p3.Y+beta),
		P3: p3,
	}
}
