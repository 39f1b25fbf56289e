// Package geom provides the small amount of 2D geometry shared by the
// layout, viewport and rendering packages.
package geom

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate. Its unit depends on the caller: simulation
// space for node positions, pixels (or terminal cells) for screen points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Polar returns the point at distance r and angle theta (radians) from center.
func Polar(center Point, r, theta float64) Point {
	return Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
}

// QuadCurve is a quadratic Bezier segment.
type QuadCurve struct {
	From    Point `json:"from"`
	Control Point `json:"control"`
	To      Point `json:"to"`
}

// CurveBetween returns a gentle arc from a to b. The control point sits on
// the perpendicular through the segment midpoint, offset by bend times the
// segment length.
func CurveBetween(a, b Point, bend float64) QuadCurve {
	d := b.Sub(a)
	mid := Midpoint(a, b)
	return QuadCurve{
		From:    a,
		Control: Point{X: mid.X - d.Y*bend, Y: mid.Y + d.X*bend},
		To:      b,
	}
}

// At evaluates the curve at t in [0, 1].
func (c QuadCurve) At(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*c.From.X + 2*u*t*c.Control.X + t*t*c.To.X,
		Y: u*u*c.From.Y + 2*u*t*c.Control.Y + t*t*c.To.Y,
	}
}

// SVGPath renders the curve as an SVG path "d" attribute.
func (c QuadCurve) SVGPath() string {
	return fmt.Sprintf("M %s,%s Q %s,%s %s,%s",
		fmtFloat(c.From.X), fmtFloat(c.From.Y),
		fmtFloat(c.Control.X), fmtFloat(c.Control.Y),
		fmtFloat(c.To.X), fmtFloat(c.To.Y))
}

func fmtFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
