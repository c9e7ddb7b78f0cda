// Package geom provides the 2D primitives used by the row layout engine:
// points, vectors, cubic Bezier curves and rotated rectangles.
//
// All geometry runs in the "math" frame where Y grows upward. KiCad's board
// frame has Y growing downward; [BoardToMath] and [MathToBoard] convert
// between the two. Angles are radians, counterclockwise positive in the math
// frame.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in the 2D plane.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add translates the point by a vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub computes the vector from o to p.
func (p Point) Sub(o Point) Vec2 {
	return Vec2{X: p.X - o.X, Y: p.Y - o.Y}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Add returns the sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the vector scaled by f.
func (v Vec2) Mul(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the angle in radians between the vector and (1, 0).
// This is atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns the vector rotated around the origin by the given angle
// in radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	c := math.Cos(rad)
	s := math.Sin(rad)
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// FromAngle returns a unit vector pointing at the given angle in radians.
func FromAngle(rad float64) Vec2 {
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// BoardToMath converts a point from KiCad's board frame (Y grows downward)
// to the math frame (Y grows upward).
func BoardToMath(p Point) Point {
	return Point{X: p.X, Y: -p.Y}
}

// MathToBoard converts a point from the math frame back to the board frame.
// The flip is its own inverse.
func MathToBoard(p Point) Point {
	return Point{X: p.X, Y: -p.Y}
}
