package kicad

import (
	"math"

	"github.com/google/uuid"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
)

// Footprint wraps one footprint form of a board tree. All mutation goes
// through the wrapper so the file-format quirks stay in one place.
type Footprint struct {
	node *Node
}

// LibID returns the footprint's library link, e.g.
// "Button_Switch_Keyboard:SW_Cherry_MX_1.00u_PCB".
func (f *Footprint) LibID() string {
	return f.node.Arg(0)
}

// Reference returns the reference designator, e.g. "SW12".
func (f *Footprint) Reference() string {
	if v, ok := f.PropertyText("Reference"); ok {
		return v
	}
	// Boards written before KiCad 8 carry the reference as a text item.
	for _, c := range f.node.FindAll("fp_text") {
		if c.Arg(0) == "reference" {
			return c.Arg(1)
		}
	}
	return ""
}

// Value returns the value field, e.g. "SW_Push".
func (f *Footprint) Value() string {
	if v, ok := f.PropertyText("Value"); ok {
		return v
	}
	for _, c := range f.node.FindAll("fp_text") {
		if c.Arg(0) == "value" {
			return c.Arg(1)
		}
	}
	return ""
}

// Description returns the footprint description text.
func (f *Footprint) Description() string {
	if v, ok := f.PropertyText("Description"); ok {
		return v
	}
	if d := f.node.Find("descr"); d != nil {
		return d.Arg(0)
	}
	return ""
}

// Position returns the footprint anchor in board millimeters.
func (f *Footprint) Position() geom.Point {
	at := f.node.Find("at")
	if at == nil {
		return geom.Pt(0, 0)
	}
	x, _ := at.FloatArg(0)
	y, _ := at.FloatArg(1)
	return geom.Pt(x, y)
}

// SetPosition moves the footprint anchor. Children keep their own
// coordinates: pads and graphics are stored relative to the anchor.
func (f *Footprint) SetPosition(p geom.Point) {
	at := f.node.Find("at")
	if at == nil {
		at = Form("at", Num(p.X), Num(p.Y))
		f.node.Children = append(f.node.Children, at)
		return
	}
	setAtPosition(at, p)
}

// OrientationDeg returns the footprint rotation in degrees.
func (f *Footprint) OrientationDeg() float64 {
	return atAngle(f.node.Find("at"))
}

// SetOrientationDeg rotates the footprint to the given absolute angle.
//
// The file format stores pad and text angles as board-absolute values even
// though their positions are anchor-relative, so every pad, property and
// text item shifts by the same delta the footprint turns through. This is
// what pcbnew itself does when a footprint rotates.
func (f *Footprint) SetOrientationDeg(deg float64) {
	at := f.node.Find("at")
	if at == nil {
		at = Form("at", Num(0), Num(0))
		f.node.Children = append(f.node.Children, at)
	}
	delta := deg - atAngle(at)
	setAtAngle(at, deg)
	if delta == 0 {
		return
	}
	for _, c := range f.node.Children {
		switch c.Name() {
		case "pad", "property", "fp_text":
			childAt := c.Find("at")
			if childAt != nil {
				setAtAngle(childAt, normalizeDeg(atAngle(childAt)+delta))
			}
		}
	}
}

// Locked reports whether the footprint is locked against moving.
func (f *Footprint) Locked() bool {
	if f.node.Find("locked") != nil {
		return true
	}
	// Pre-KiCad 8 boards use a bare token.
	for i, c := range f.node.Children {
		if i > 0 && !c.List && !c.Quoted && c.Atom == "locked" {
			return true
		}
	}
	return false
}

// SetLocked locks or unlocks the footprint.
func (f *Footprint) SetLocked(locked bool) {
	f.node.Remove("locked")
	kept := f.node.Children[:0]
	for i, c := range f.node.Children {
		if i > 0 && !c.List && !c.Quoted && c.Atom == "locked" {
			continue
		}
		kept = append(kept, c)
	}
	f.node.Children = kept
	if locked {
		f.node.Children = append(f.node.Children, Form("locked", Sym("yes")))
	}
}

// PropertyText returns the value of a named property field.
func (f *Footprint) PropertyText(name string) (string, bool) {
	for _, c := range f.node.FindAll("property") {
		if c.Arg(0) == name {
			return c.Arg(1), true
		}
	}
	return "", false
}

// SetProperty writes a named property field, creating it if needed. A
// hidden property stays off the canvas but survives in the file, which is
// how row parameters ride along inside the board itself.
func (f *Footprint) SetProperty(name, text string, hidden bool) {
	for _, c := range f.node.FindAll("property") {
		if c.Arg(0) != name {
			continue
		}
		if len(c.Children) >= 3 {
			c.Children[2] = Str(text)
		} else {
			c.Children = append(c.Children, Str(text))
		}
		c.Remove("hide")
		if hidden {
			c.Children = append(c.Children, Form("hide", Sym("yes")))
		}
		return
	}

	prop := Form("property", Str(name), Str(text),
		Form("at", Num(0), Num(0), Num(0)),
		Form("layer", Str("F.Fab")),
	)
	if hidden {
		prop.Children = append(prop.Children, Form("hide", Sym("yes")))
	}
	prop.Children = append(prop.Children,
		Form("uuid", Str(uuid.NewString())),
		Form("effects",
			Form("font",
				Form("size", Num(1.27), Num(1.27)),
				Form("thickness", Num(0.15)),
			),
		),
	)
	f.node.Children = append(f.node.Children, prop)
}

// BoundingBox measures the footprint's own geometry: pads and graphic
// shapes, text excluded. The extents are in the footprint frame, so the
// result does not change when the footprint rotates on the board. Both
// values are 0 for a footprint with no geometry.
func (f *Footprint) BoundingBox() (w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	growForm := func(n *Node, name string) {
		if pt := n.Find(name); pt != nil {
			x, okX := pt.FloatArg(0)
			y, okY := pt.FloatArg(1)
			if okX && okY {
				grow(x, y)
			}
		}
	}

	for _, c := range f.node.Children {
		switch c.Name() {
		case "pad":
			at := c.Find("at")
			size := c.Find("size")
			if at == nil || size == nil {
				continue
			}
			x, _ := at.FloatArg(0)
			y, _ := at.FloatArg(1)
			sx, _ := size.FloatArg(0)
			sy, _ := size.FloatArg(1)
			grow(x-sx/2, y-sy/2)
			grow(x+sx/2, y+sy/2)
		case "fp_line", "fp_rect":
			growForm(c, "start")
			growForm(c, "end")
		case "fp_arc":
			growForm(c, "start")
			growForm(c, "mid")
			growForm(c, "end")
		case "fp_circle":
			center := c.Find("center")
			end := c.Find("end")
			if center == nil || end == nil {
				continue
			}
			cx, _ := center.FloatArg(0)
			cy, _ := center.FloatArg(1)
			ex, _ := end.FloatArg(0)
			ey, _ := end.FloatArg(1)
			r := math.Hypot(ex-cx, ey-cy)
			grow(cx-r, cy-r)
			grow(cx+r, cy+r)
		case "fp_poly":
			if pts := c.Find("pts"); pts != nil {
				for _, xy := range pts.FindAll("xy") {
					x, okX := xy.FloatArg(0)
					y, okY := xy.FloatArg(1)
					if okX && okY {
						grow(x, y)
					}
				}
			}
		}
	}

	if math.IsInf(minX, 1) {
		return 0, 0
	}
	return maxX - minX, maxY - minY
}

func atAngle(at *Node) float64 {
	if at == nil {
		return 0
	}
	a, ok := at.FloatArg(2)
	if !ok {
		return 0
	}
	return a
}

func setAtPosition(at *Node, p geom.Point) {
	for len(at.Children) < 3 {
		at.Children = append(at.Children, Num(0))
	}
	at.Children[1] = Num(p.X)
	at.Children[2] = Num(p.Y)
}

// setAtAngle writes the third argument of an (at ...) form, dropping it
// entirely for zero the way KiCad does.
func setAtAngle(at *Node, deg float64) {
	for len(at.Children) < 3 {
		at.Children = append(at.Children, Num(0))
	}
	if deg == 0 {
		at.Children = at.Children[:3]
		return
	}
	if len(at.Children) < 4 {
		at.Children = append(at.Children, Num(deg))
		return
	}
	at.Children[3] = Num(deg)
}

func normalizeDeg(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}
