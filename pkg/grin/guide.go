package grin

import (
	"math"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

// Guide drawing defaults. Guides land on Edge.Cuts unless redirected, at
// a hairline width that plots visibly without dominating the board.
const (
	DefaultGuideLayer   = "Edge.Cuts"
	DefaultGuideWidthMM = 0.1

	// curveSegments is the number of line segments approximating the
	// row curve when drawn as a guide.
	curveSegments = 100
)

// GuideOptions selects the debug geometry drawn alongside a solved row.
// Both kinds are off by default.
type GuideOptions struct {
	// Curve draws the row's Bezier as a polyline.
	Curve bool
	// Squares outlines each placed key at its solved angle.
	Squares bool
	// Layer receives the guide lines. Empty means DefaultGuideLayer.
	Layer string
	// WidthMM is the guide line width. Zero means DefaultGuideWidthMM.
	WidthMM float64
}

// enabled reports whether any guide drawing is requested.
func (g GuideOptions) enabled() bool {
	return g.Curve || g.Squares
}

// validate fills defaults and checks the target layer name.
func (g *GuideOptions) validate() error {
	if !g.enabled() {
		return nil
	}
	if g.Layer == "" {
		g.Layer = DefaultGuideLayer
	}
	if g.WidthMM <= 0 {
		g.WidthMM = DefaultGuideWidthMM
	}
	return errors.ValidateLayer(g.Layer)
}

// drawGuides adds the requested guide geometry to the board. The curve is
// sampled in the math frame and flipped to board coordinates segment by
// segment; key outlines are rebuilt from the solved placements and the
// actual slot sizes.
func drawGuides(board *kicad.Board, curve geom.CubicBez, placements []row.Placement, slots []row.Slot, opts GuideOptions) {
	if opts.Curve {
		pts := curve.Flatten(curveSegments)
		for i := 1; i < len(pts); i++ {
			board.AddGrLine(geom.MathToBoard(pts[i-1]), geom.MathToBoard(pts[i]), opts.WidthMM, opts.Layer)
		}
	}

	if opts.Squares {
		for i, p := range placements {
			center := geom.BoardToMath(p.Center)
			angle := p.AngleDeg * math.Pi / 180
			corners := geom.RectCorners(center, slots[i].WidthMM, slots[i].HeightMM, angle)
			for j := range corners {
				next := corners[(j+1)%len(corners)]
				board.AddGrLine(geom.MathToBoard(corners[j]), geom.MathToBoard(next), opts.WidthMM, opts.Layer)
			}
		}
	}
}
