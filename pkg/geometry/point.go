// Package geometry provides the pixel-space types shared by the tracking pipeline.
package geometry

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is an immutable pixel coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// FromImage converts an integer image point.
func FromImage(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Image truncates the point to integer pixel coordinates for drawing.
func (p Point) Image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Eq reports whether both coordinates are identical.
func (p Point) Eq(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// DistanceSq returns the squared Euclidean distance between p and q.
func (p Point) DistanceSq(q Point) float64 {
	return r2.Norm2(r2.Sub(p.vec(), q.vec()))
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}
