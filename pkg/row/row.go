package row

import (
	"math"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/units"
)

const (
	// endWidthEps decides when an end slot's width counts as non-standard
	// and needs the virtual-width treatment.
	endWidthEps = 1e-6
	// anchorEps is the translation below which origin anchoring is a no-op.
	anchorEps = 1e-9
)

// Slot is one rectangular object to be positioned along the row.
type Slot struct {
	// WidthMM and HeightMM are the slot's physical size. Both must be
	// finite and positive; the engine never substitutes defaults.
	WidthMM  float64
	HeightMM float64
	// Anchor is the slot's current position in the board frame (Y down).
	// Slot 0's anchor fixes where the solved row lands.
	Anchor geom.Point
}

// Config holds the row layout parameters.
type Config struct {
	// SagMM is the downward depth of the curve at the row midpoint.
	SagMM float64
	// EndFlat is the number of slots per side forced flat (0 to 2).
	EndFlat int
	// Profile selects the angle easing: [ProfileCosine],
	// [ProfileQuadratic] or [ProfileBezier]. Unknown keys behave like
	// ProfileBezier.
	Profile string
	// AsymmetricCurve pulls the control points toward the wider end slot.
	AsymmetricCurve bool
}

// Placement is the solved pose for one slot: the center in the board frame
// and the orientation in degrees.
type Placement struct {
	Center   geom.Point
	AngleDeg float64
}

// frame holds the derived quantities the solve runs on: per-slot sizes,
// the virtual spacing widths, cumulative distances and the curve itself.
// Everything is in the math frame.
type frame struct {
	widths  []float64
	heights []float64
	virtual []float64
	dists   []float64
	anchor  geom.Point
	curve   geom.CubicBez
}

// buildFrame validates the slots and derives the curve and spacing plan
// shared by [Solve] and [Curve].
func buildFrame(slots []Slot, cfg Config) (frame, error) {
	if err := errors.ValidateSlotCount(len(slots)); err != nil {
		return frame{}, err
	}
	for i, s := range slots {
		if err := errors.ValidateDimension(i, "width", s.WidthMM); err != nil {
			return frame{}, err
		}
		if err := errors.ValidateDimension(i, "height", s.HeightMM); err != nil {
			return frame{}, err
		}
	}

	n := len(slots)
	widths := make([]float64, n)
	heights := make([]float64, n)
	for i, s := range slots {
		widths[i] = s.WidthMM
		heights[i] = s.HeightMM
	}
	leftW, rightW := widths[0], widths[n-1]

	// Non-standard end slots take part in curve and spacing math at the
	// canonical width; the end correction restores their true size later.
	virtual := make([]float64, n)
	copy(virtual, widths)
	if math.Abs(leftW-units.UnitMM) > endWidthEps {
		virtual[0] = units.UnitMM
	}
	if math.Abs(rightW-units.UnitMM) > endWidthEps {
		virtual[n-1] = units.UnitMM
	}

	anchor := geom.BoardToMath(slots[0].Anchor)
	base := anchor
	if math.Abs(virtual[0]-leftW) > endWidthEps {
		base.X += (leftW - virtual[0]) / 2
	}

	// Cumulative center-to-center spacing along the curve.
	dists := make([]float64, n)
	for i := 1; i < n; i++ {
		dists[i] = dists[i-1] + (virtual[i-1]+virtual[i])/2
	}
	rowLen := dists[n-1]

	return frame{
		widths:  widths,
		heights: heights,
		virtual: virtual,
		dists:   dists,
		anchor:  anchor,
		curve:   curveControls(base, geom.Pt(base.X+rowLen, base.Y), cfg.SagMM, leftW, rightW, cfg.AsymmetricCurve),
	}, nil
}

// Solve arranges the slots along a sagging Bezier row and returns one
// placement per slot, in input order.
//
// The solve is a pure function of its arguments: no state is kept between
// calls and identical inputs produce identical output, so a row can be
// re-solved later from saved parameters. Errors carry the codes
// [errors.ErrCodeInsufficientSlots] (fewer than two slots) and
// [errors.ErrCodeInvalidDimension] (non-finite or non-positive sizes); on
// error no partial result is produced.
func Solve(slots []Slot, cfg Config) ([]Placement, error) {
	f, err := buildFrame(slots, cfg)
	if err != nil {
		return nil, err
	}

	n := len(slots)
	cats := AssignCategories(n, cfg.EndFlat)

	ts := f.curve.DivideByDistances(n, f.dists)
	centers := make([]geom.Point, n)
	for i, t := range ts {
		centers[i] = f.curve.Eval(t)
	}

	raw, angles := anglesFromTangents(ts, f.curve, cfg.Profile, cats)

	applyCornerContact(centers, angles, f.virtual, cats, raw)

	correctEndWidths(centers, angles, f.widths, f.heights)
	flattenBaseline(centers, cats)
	anchorFirst(centers, f.anchor)

	out := make([]Placement, n)
	for i := range centers {
		out[i] = Placement{
			Center:   geom.MathToBoard(centers[i]),
			AngleDeg: angles[i] * 180 / math.Pi,
		}
	}
	return out, nil
}

// Curve returns the Bezier the solve threads the row along, for callers
// that want to draw it. The curve lives in the math frame; convert
// sampled points with [geom.MathToBoard] before plotting them on a board.
func Curve(slots []Slot, cfg Config) (geom.CubicBez, error) {
	f, err := buildFrame(slots, cfg)
	if err != nil {
		return geom.CubicBez{}, err
	}
	return f.curve, nil
}

// correctEndWidths restores true end sizes after the curve math ran on
// canonical widths. Each end center shifts by the offset between its
// row-facing corner at canonical width and at actual width, so the slot
// keeps its contact corner and grows outward.
func correctEndWidths(centers []geom.Point, angles, widths, heights []float64) {
	n := len(centers)

	if math.Abs(widths[0]-units.UnitMM) > endWidthEps {
		virtual := geom.Vec(units.UnitMM/2, -heights[0]/2).Rotate(angles[0])
		actual := geom.Vec(widths[0]/2, -heights[0]/2).Rotate(angles[0])
		centers[0] = centers[0].Add(virtual.Sub(actual))
	}

	if math.Abs(widths[n-1]-units.UnitMM) > endWidthEps {
		virtual := geom.Vec(-units.UnitMM/2, -heights[n-1]/2).Rotate(angles[n-1])
		actual := geom.Vec(-widths[n-1]/2, -heights[n-1]/2).Rotate(angles[n-1])
		centers[n-1] = centers[n-1].Add(virtual.Sub(actual))
	}
}

// flattenBaseline forces the flat end runs onto slot 0's height: every
// Flat slot after the first, and the last slot regardless of category, get
// the baseline Y. This keeps the end runs visually level against small
// curve and contact drift.
func flattenBaseline(centers []geom.Point, cats []Category) {
	if len(centers) == 0 {
		return
	}
	baseY := centers[0].Y
	for i := 1; i < len(centers); i++ {
		if cats[i] == Flat {
			centers[i] = geom.Pt(centers[i].X, baseY)
		}
	}
	if len(centers) > 1 {
		last := len(centers) - 1
		centers[last] = geom.Pt(centers[last].X, baseY)
	}
}

// anchorFirst translates the whole row so slot 0 sits exactly on its
// original anchor, decoupling the relative solve from the row's real
// placement on the board.
func anchorFirst(centers []geom.Point, anchor geom.Point) {
	if len(centers) == 0 {
		return
	}
	d := centers[0].Sub(anchor)
	if math.Abs(d.X) <= anchorEps && math.Abs(d.Y) <= anchorEps {
		return
	}
	for i := range centers {
		centers[i] = centers[i].Add(d.Mul(-1))
	}
}
