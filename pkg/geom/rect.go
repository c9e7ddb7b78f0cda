package geom

import "sort"

// Corner identifies a corner of a rectangle by its unrotated position in
// the math frame.
type Corner uint8

const (
	UpperLeft Corner = iota
	UpperRight
	LowerLeft
	LowerRight
)

func (c Corner) String() string {
	switch c {
	case UpperLeft:
		return "UL"
	case UpperRight:
		return "UR"
	case LowerLeft:
		return "LL"
	case LowerRight:
		return "LR"
	}
	return "??"
}

// Offset returns the corner's offset from the rectangle center before
// rotation.
func (c Corner) Offset(w, h float64) Vec2 {
	hw, hh := w/2, h/2
	switch c {
	case UpperLeft:
		return Vec2{X: -hw, Y: hh}
	case UpperRight:
		return Vec2{X: hw, Y: hh}
	case LowerLeft:
		return Vec2{X: -hw, Y: -hh}
	default:
		return Vec2{X: hw, Y: -hh}
	}
}

// CornerPoint returns the position of one corner of a rectangle with the
// given center, size and rotation.
func CornerPoint(center Point, w, h, angle float64, c Corner) Point {
	return center.Add(c.Offset(w, h).Rotate(angle))
}

// RectCorners returns the four corners of a rotated rectangle in outline
// order (lower-left, lower-right, upper-right, upper-left), suitable for
// drawing a closed polyline.
func RectCorners(center Point, w, h, angle float64) [4]Point {
	return [4]Point{
		CornerPoint(center, w, h, angle, LowerLeft),
		CornerPoint(center, w, h, angle, LowerRight),
		CornerPoint(center, w, h, angle, UpperRight),
		CornerPoint(center, w, h, angle, UpperLeft),
	}
}

// LowerUpperCorners classifies the corners of a rotated rectangle into the
// pair lowest in the math frame and the pair highest. The classification
// follows the rotated geometry: a rectangle turned 180 degrees swaps which
// physical corners count as lower.
func LowerUpperCorners(angle, w, h float64) (lower, upper [2]Corner) {
	corners := []Corner{UpperLeft, UpperRight, LowerLeft, LowerRight}
	var ys [4]float64
	for _, c := range corners {
		ys[c] = c.Offset(w, h).Rotate(angle).Y
	}
	// Stable sort keeps declaration order on equal heights, so the pair
	// order is deterministic at exact right angles.
	sort.SliceStable(corners, func(i, j int) bool {
		return ys[corners[i]] < ys[corners[j]]
	})
	lower = [2]Corner{corners[0], corners[1]}
	upper = [2]Corner{corners[2], corners[3]}
	return lower, upper
}
