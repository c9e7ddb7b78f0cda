// Package kicad reads and writes KiCad board files (.kicad_pcb).
//
// The package works directly on the s-expression tree of the board file:
// [Load] parses a board, [Board.Footprints] exposes the footprints for
// inspection and movement, and [Board.Save] writes the whole tree back
// through an atomic rename. Only the nodes a caller touches change;
// everything else round-trips structurally intact. All coordinates are
// millimeters in the board frame (Y grows downward), angles are degrees.
package kicad

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
)

// Board is a parsed .kicad_pcb file.
type Board struct {
	root *Node
	path string
}

// Load reads and parses a board file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "reading board file %s", path)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parsing board file %s", path)
	}
	b.path = path
	return b, nil
}

// Parse builds a board from raw file bytes.
func Parse(data []byte) (*Board, error) {
	root, err := ParseSExpr(data)
	if err != nil {
		return nil, err
	}
	if root.Name() != "kicad_pcb" {
		return nil, errors.New(errors.ErrCodeParse, "not a KiCad board: top form is %q", root.Name())
	}
	return &Board{root: root}, nil
}

// Path returns the file the board was loaded from, if any.
func (b *Board) Path() string { return b.path }

// Footprints returns every footprint on the board, in file order.
func (b *Board) Footprints() []*Footprint {
	nodes := b.root.FindAll("footprint")
	out := make([]*Footprint, len(nodes))
	for i, n := range nodes {
		out[i] = &Footprint{node: n}
	}
	return out
}

// FindFootprint returns the footprint with the given reference.
func (b *Board) FindFootprint(ref string) (*Footprint, bool) {
	for _, fp := range b.Footprints() {
		if fp.Reference() == ref {
			return fp, true
		}
	}
	return nil, false
}

// LayerNames returns the canonical names from the board's layer table.
func (b *Board) LayerNames() []string {
	layers := b.root.Find("layers")
	if layers == nil {
		return nil
	}
	var names []string
	for _, c := range layers.Children[1:] {
		if c.List && len(c.Children) >= 2 && !c.Children[1].List {
			names = append(names, c.Children[1].Atom)
		}
	}
	return names
}

// HasLayer reports whether the board defines a layer with this name.
func (b *Board) HasLayer(name string) bool {
	for _, l := range b.LayerNames() {
		if l == name {
			return true
		}
	}
	return false
}

// AddGrLine appends a graphic line segment to the board. Points are board
// frame millimeters.
func (b *Board) AddGrLine(start, end geom.Point, widthMM float64, layer string) {
	b.root.Children = append(b.root.Children, Form("gr_line",
		Form("start", Num(start.X), Num(start.Y)),
		Form("end", Num(end.X), Num(end.Y)),
		Form("stroke",
			Form("width", Num(widthMM)),
			Form("type", Sym("solid")),
		),
		Form("layer", Str(layer)),
		Form("uuid", Str(uuid.NewString())),
	))
}

// Bytes renders the board file.
func (b *Board) Bytes() []byte {
	return Render(b.root)
}

// Save writes the board to path atomically: the rendered tree goes to a
// temporary file in the same directory, which then replaces the target by
// rename. A crash mid-save never leaves a half-written board behind.
func (b *Board) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".grinner-*.kicad_pcb")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "creating temporary board file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "writing temporary board file %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "closing temporary board file %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "setting permissions on %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "replacing board file %s", path)
	}
	return nil
}
