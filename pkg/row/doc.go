// Package row arranges a sequence of fixed-size rectangular slots along a
// downward-sagging cubic Bezier so that adjacent slots touch at a corner.
//
// The engine runs as a single deterministic pass over immutable inputs:
//
//  1. Each slot position gets a structural [Category] from the row length
//     and the end-flat count. The category decides whether a slot lies
//     horizontal and which corner pair it shares with its neighbors.
//  2. A cubic Bezier is built between the row endpoints, dropped at the
//     middle by the configured sag. Unequal end widths can optionally pull
//     the control points toward the wider side.
//  3. The requested center-to-center spacings are mapped onto curve
//     parameters through a sampled arc-length table.
//  4. Curve tangents give each slot a raw angle; an easing profile fades
//     the rotation out toward the row center or ends, and flat slots are
//     clamped level.
//  5. A greedy left-to-right pass re-anchors every slot against its placed
//     neighbor so the correct corners touch, scoring a small candidate set
//     per step.
//  6. Finishing passes restore true end-slot widths, align the flat runs
//     onto a shared baseline and translate the row back onto its anchor.
//
// All geometry runs in the math frame (Y up); [Solve] accepts and returns
// board-frame coordinates (Y down) and reports angles in degrees. The
// engine holds no state between calls: identical inputs produce bitwise
// identical output.
package row
