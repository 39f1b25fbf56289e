// Package viewport maps simulation space onto the screen. It computes the
// fit-to-view transform and runs the pan/zoom/pinch gesture state machine.
package viewport

import (
	"fmt"
	"math"

	"github.com/matsen/prayermap/internal/geom"
)

// Transform maps a world point p to the screen point p*K + (X, Y).
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{K: 1}

// Apply maps a world point to screen space.
func (t Transform) Apply(p geom.Point) geom.Point {
	return geom.Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to world space.
func (t Transform) Invert(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// SVG renders the transform as an SVG transform attribute.
func (t Transform) SVG() string {
	return fmt.Sprintf("translate(%.2f, %.2f) scale(%.4f)", t.X, t.Y, t.K)
}

// Size is the container size in screen units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `json:"height" yaml:"height" validate:"gt=0"`
}

// Center returns the middle of the container.
func (s Size) Center() geom.Point {
	return geom.Point{X: s.Width / 2, Y: s.Height / 2}
}

// ZoomOptions bounds the scale and sets the per-tick wheel factor.
type ZoomOptions struct {
	Min         float64 `yaml:"min" json:"min" validate:"gt=0"`
	Max         float64 `yaml:"max" json:"max" validate:"gtefield=Min"`
	WheelFactor float64 `yaml:"wheel_factor" json:"wheel_factor" validate:"gt=1"`
}

// DefaultZoomOptions returns the [0.1, 5] range with a 1.1 wheel step.
func DefaultZoomOptions() ZoomOptions {
	return ZoomOptions{Min: 0.1, Max: 5, WheelFactor: 1.1}
}

// Clamp limits k to [Min, Max].
func (z ZoomOptions) Clamp(k float64) float64 {
	return math.Max(z.Min, math.Min(k, z.Max))
}

// zoomAround returns from rescaled to k so that the world point under the
// screen point at keeps its screen position.
func zoomAround(from Transform, at geom.Point, k float64) Transform {
	r := k / from.K
	return Transform{
		K: k,
		X: at.X - (at.X-from.X)*r,
		Y: at.Y - (at.Y-from.Y)*r,
	}
}
