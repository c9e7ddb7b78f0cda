// Package pkg provides the core libraries for the grinner row layout tool.
//
// # Overview
//
// Grinner arranges keyboard switch footprints along a downward-sagging
// curve on KiCad boards, the way ergonomic keyboards stagger their rows.
// Keys keep their fixed sizes; the engine bends the row, not the keys.
// The pkg directory is organized into five main areas:
//
//  1. [row] - The layout engine (curve construction, corner contact, angle profiles)
//  2. [geom] - Planar geometry primitives (points, rectangles, cubic Beziers)
//  3. [kicad] - Board file access (s-expression parsing, queries, write-back)
//  4. [grin] - Orchestration (gather → infer → solve → apply → save)
//  5. [params] - Parameter records saved on the board for later re-edits
//
// # Architecture
//
// The typical data flow through grinner:
//
//	.kicad_pcb file
//	     ↓
//	[kicad] package (parse the board, find switch footprints)
//	     ↓
//	[grin] package (gather targets, infer key sizes)
//	     ↓
//	[row] package (solve centers and angles along the curve)
//	     ↓
//	[kicad] package (write positions, orientations, guide lines)
//
// # Quick Start
//
// Solve a row of uniform keys without touching a board file:
//
//	import (
//	    "github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
//	    "github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
//	    "github.com/f4ah6o/kicad-keyboard-grinner/pkg/units"
//	)
//
//	slots := make([]row.Slot, 5)
//	for i := range slots {
//	    slots[i] = row.Slot{
//	        WidthMM:  units.UnitMM,
//	        HeightMM: units.UnitMM,
//	        Anchor:   geom.Pt(100+units.UnitMM*float64(i), 50),
//	    }
//	}
//	placements, err := row.Solve(slots, row.Config{
//	    SagMM:   20,
//	    EndFlat: 1,
//	    Profile: row.ProfileCosine,
//	})
//
// Run the full pipeline against a board file:
//
//	runner := grin.NewRunner(logger)
//	result, err := runner.Execute(ctx, grin.Options{
//	    BoardPath: "keyboard.kicad_pcb",
//	    Layout:    row.Config{SagMM: 20, EndFlat: 1, Profile: row.ProfileCosine},
//	})
//
// # Main Packages
//
// ## Layout Engine
//
// [row] - The sagging-row solver. Builds a cubic Bezier through the row,
// spaces slot centers by arc length, reads angles from curve tangents,
// then pulls adjacent keys together until their corners touch. End keys
// can be forced flat, and the whole row is anchored at the first key's
// original position.
//
// [geom] - Points, vectors, rectangles, and cubic Bezier curves in the
// math frame (Y grows upward). Board coordinates (Y grows downward) are
// converted at the edges via [geom.BoardToMath] and [geom.MathToBoard].
//
// [units] - Keyboard sizing conventions: the 19.05mm unit, key size
// parsing ("1.5u", "2u x 1u"), and quantization of measured sizes to
// quarter units.
//
// ## Board Access
//
// [kicad] - Minimal .kicad_pcb support: an s-expression reader/writer
// that preserves unknown content, plus board and footprint views for the
// fields grinner needs (position, orientation, properties, graphics).
//
// [params] - The parameter records grinner stores on each row's first
// footprint as a hidden field, so a board round-trips its own layout
// history. Includes discovery of all saved rows on a board.
//
// ## Orchestration
//
// [grin] - The runner used by every CLI command: target gathering with
// natural reference ordering, key size inference from footprint fields,
// the solve/apply/save pipeline, timestamped backups, and optional guide
// geometry on a chosen layer.
//
// [errors] - Structured errors with machine-readable codes shared by the
// engine and the CLI, plus input validation helpers.
//
// [observability] - Optional hooks for run instrumentation. No-op by
// default; main can register a backend without the libraries depending
// on one.
//
// [buildinfo] - Build-time version metadata injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/row/...         # Specific package
//	go test -run TestSolve ./...  # Specific behavior
//
// [row]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/row
// [geom]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom
// [units]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/units
// [kicad]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad
// [params]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/params
// [grin]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin
// [errors]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors
// [observability]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/f4ah6o/kicad-keyboard-grinner/pkg/buildinfo
package pkg
