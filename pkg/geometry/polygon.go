package geometry

import "math"

// Moments holds the zeroth and first order spatial moments of a closed polygon.
type Moments struct {
	M00 float64 // Signed enclosed area
	M10 float64
	M01 float64
}

// PolygonMoments computes moments of the polygon outlined by pts using Green's
// theorem, matching contour moments in OpenCV. The polygon is implicitly closed.
// The sign of every moment follows the winding order; Centroid is unaffected.
func PolygonMoments(pts []Point) Moments {
	var m Moments
	n := len(pts)
	if n == 0 {
		return m
	}

	prev := pts[n-1]
	for _, cur := range pts {
		cross := prev.X*cur.Y - cur.X*prev.Y
		m.M00 += cross
		m.M10 += cross * (prev.X + cur.X)
		m.M01 += cross * (prev.Y + cur.Y)
		prev = cur
	}

	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6
	return m
}

// Centroid returns the area-weighted centroid.
// ok is false when the enclosed area is exactly zero.
func (m Moments) Centroid() (c Point, ok bool) {
	if m.M00 == 0 {
		return Point{}, false
	}
	return Point{X: m.M10 / m.M00, Y: m.M01 / m.M00}, true
}

// Area returns the absolute enclosed area.
func (m Moments) Area() float64 {
	return math.Abs(m.M00)
}

// Rect is an axis-aligned pixel rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// BoundingRect returns the smallest upright rectangle holding every point.
// Like OpenCV's boundingRect the extent is inclusive, so a single pixel is 1x1.
func BoundingRect(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	minX, minY = math.Floor(minX), math.Floor(minY)
	return Rect{
		X: minX,
		Y: minY,
		W: math.Floor(maxX) - minX + 1,
		H: math.Floor(maxY) - minY + 1,
	}
}

// Center returns the middle of the rectangle using integer halving.
func (r Rect) Center() Point {
	return Point{X: r.X + halve(r.W), Y: r.Y + halve(r.H)}
}

// LeftMiddle returns the midpoint of the left edge.
func (r Rect) LeftMiddle() Point {
	return Point{X: r.X, Y: r.Y + halve(r.H)}
}

// TopMiddle returns the midpoint of the top edge.
func (r Rect) TopMiddle() Point {
	return Point{X: r.X + halve(r.W), Y: r.Y}
}

func halve(v float64) float64 {
	return math.Floor(v / 2)
}
