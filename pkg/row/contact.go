package row

import (
	"math"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/units"
)

// ContactMode selects which corner pair two adjacent slots use to touch.
type ContactMode uint8

const (
	// ContactLower touches at the lower corner pair.
	ContactLower ContactMode = iota
	// ContactUpper touches at the upper corner pair.
	ContactUpper
)

func (m ContactMode) String() string {
	if m == ContactUpper {
		return "upper"
	}
	return "lower"
}

// contactMode picks the touching corner pair from the categories of two
// adjacent slots. The valley floor and the slots around it meet at their
// upper corners; flat end runs meet at their lower corners.
func contactMode(prev, curr Category) ContactMode {
	switch {
	case prev == ValleyFlat || curr == ValleyFlat:
		return ContactUpper
	case prev == Flat || curr == Flat:
		return ContactLower
	case prev == Upper || curr == Upper || prev == ValleyUpper || curr == ValleyUpper:
		return ContactUpper
	}
	return ContactLower
}

// Scoring constants for the corner-contact search. The two penalties must
// stay ordered backwardPenalty > tooClosePenalty, and both must dwarf any
// reachable distance error, so a disqualified candidate can never outscore
// a viable one.
const (
	// forwardBiasWeight rewards progress along the row direction.
	forwardBiasWeight = 1000.0
	// minSeparationRatio is the fraction of the ideal center distance
	// below which a candidate counts as overlapping.
	minSeparationRatio = 0.6
	// backwardPenalty disqualifies candidates that move against the row.
	backwardPenalty = 1e6
	// tooClosePenalty disqualifies candidates that sit too close to the
	// previous center.
	tooClosePenalty = 1e5
)

// placeWithCornerContact solves the center of the current slot so that one
// of its corners in the selected pair lands on a corner of the previous
// slot's pair.
//
// Which corners geometrically touch depends on both rotations, so the
// solver enumerates all pair combinations (at most four), derives the
// candidate center that brings each corner pair into coincidence, and
// scores the candidates: forward progress dominates, distance from the
// ideal center spacing subtracts, moving backward or collapsing into the
// previous slot disqualifies. Contact math always runs at the canonical
// unit height regardless of a slot's true height.
func placeWithCornerContact(prevCenter geom.Point, prevAngle, currAngle, prevW, currW float64, mode ContactMode, forward geom.Vec2) geom.Point {
	const height = units.UnitMM

	lowerPrev, upperPrev := geom.LowerUpperCorners(prevAngle, prevW, height)
	lowerCurr, upperCurr := geom.LowerUpperCorners(currAngle, currW, height)
	prevPair, currPair := lowerPrev, lowerCurr
	if mode == ContactUpper {
		prevPair, currPair = upperPrev, upperCurr
	}

	target := (prevW + currW) / 2
	var best geom.Point
	bestScore := 0.0
	found := false

	for _, lp := range prevPair {
		pCorner := geom.CornerPoint(prevCenter, prevW, height, prevAngle, lp)
		for _, lc := range currPair {
			offset := lc.Offset(currW, height).Rotate(currAngle)
			candidate := geom.Pt(pCorner.X-offset.X, pCorner.Y-offset.Y)

			d := candidate.Sub(prevCenter)
			dist := d.Hypot()
			forwardDist := d.Dot(forward)

			score := forwardBiasWeight*forwardDist - math.Abs(dist-target)
			if forwardDist < 0 {
				score -= backwardPenalty
			}
			if dist < minSeparationRatio*target {
				score -= tooClosePenalty
			}

			if !found || score > bestScore {
				found = true
				bestScore = score
				best = candidate
			}
		}
	}

	if !found {
		// Unreachable while both pairs are non-empty, but the solver stays
		// total: walk straight ahead at the ideal spacing.
		return prevCenter.Add(forward.Mul(target))
	}
	return best
}

// applyCornerContact walks the row left to right, replacing each center
// with the corner-contact solution against its already-placed neighbor.
// Greedy with no backtracking: a placed slot is never revisited.
func applyCornerContact(centers []geom.Point, angles, widths []float64, cats []Category, raw []float64) {
	for i := 1; i < len(centers); i++ {
		mode := contactMode(cats[i-1], cats[i])

		// The forward direction is the circular mean of the raw tangent
		// angles, not the eased ones, so the row keeps advancing along the
		// curve even where a slot's drawn angle is clamped level.
		avg := math.Atan2(
			math.Sin(raw[i-1])+math.Sin(raw[i]),
			math.Cos(raw[i-1])+math.Cos(raw[i]),
		)
		forward := geom.FromAngle(avg)

		centers[i] = placeWithCornerContact(
			centers[i-1], angles[i-1], angles[i],
			widths[i-1], widths[i], mode, forward,
		)
	}
}
