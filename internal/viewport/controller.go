package viewport

import (
	"github.com/matsen/prayermap/internal/geom"
)

// State is the gesture currently driving the transform.
type State int

const (
	Idle State = iota
	Panning
	Pinching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// panGesture is captured when a drag starts.
type panGesture struct {
	origin geom.Point // pointer position at press
	start  Transform
}

// pinchGesture is captured when a second finger lands.
type pinchGesture struct {
	distance float64 // finger separation at gesture start, > 0
	start    Transform
}

// Controller owns a Transform and the gesture state machine that edits it.
// Every gesture computes from the transform captured when it began, never
// from the running value, so interleaved updates cannot make it drift.
// A Controller is not safe for concurrent use.
type Controller struct {
	t     Transform
	zoom  ZoomOptions
	state State
	pan   panGesture
	pinch pinchGesture
}

// NewController returns an idle controller starting at t.
func NewController(t Transform, zoom ZoomOptions) *Controller {
	if t.K <= 0 {
		t.K = 1
	}
	return &Controller{t: t, zoom: zoom}
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform {
	return c.t
}

// State returns the active gesture.
func (c *Controller) State() State {
	return c.state
}

// SetTransform replaces the transform wholesale and abandons any gesture.
func (c *Controller) SetTransform(t Transform) {
	c.t = t
	c.reset()
}

// Wheel zooms one tick around the screen point at. Positive deltaY zooms
// out. Wheel input is ignored while a drag or pinch is in progress.
func (c *Controller) Wheel(at geom.Point, deltaY float64) bool {
	switch {
	case deltaY > 0:
		return c.ZoomBy(at, 1/c.zoom.WheelFactor)
	case deltaY < 0:
		return c.ZoomBy(at, c.zoom.WheelFactor)
	default:
		return false
	}
}

// ZoomBy multiplies the scale by factor around the screen point at.
func (c *Controller) ZoomBy(at geom.Point, factor float64) bool {
	if c.state != Idle || factor <= 0 {
		return false
	}
	c.t = zoomAround(c.t, at, c.zoom.Clamp(c.t.K*factor))
	return true
}

// PanBy shifts the translation by d screen units.
func (c *Controller) PanBy(d geom.Point) bool {
	if c.state != Idle {
		return false
	}
	c.t.X += d.X
	c.t.Y += d.Y
	return true
}

// PointerDown starts a drag at p.
func (c *Controller) PointerDown(p geom.Point) {
	c.reset()
	c.state = Panning
	c.pan = panGesture{origin: p, start: c.t}
}

// PointerMove updates an active drag. It reports whether the transform changed.
func (c *Controller) PointerMove(p geom.Point) bool {
	if c.state != Panning {
		return false
	}
	c.t = c.pan.translated(p)
	return true
}

// PointerUp ends a drag. No momentum is carried.
func (c *Controller) PointerUp() {
	if c.state == Panning {
		c.reset()
	}
}

// TouchStart handles a new contact; touches lists every finger now down.
// One finger drags, two pinch.
func (c *Controller) TouchStart(touches []geom.Point) {
	c.reset()
	switch {
	case len(touches) == 1:
		c.state = Panning
		c.pan = panGesture{origin: touches[0], start: c.t}
	case len(touches) >= 2:
		d := touches[0].Dist(touches[1])
		if d > 0 {
			c.state = Pinching
			c.pinch = pinchGesture{distance: d, start: c.t}
		}
	}
}

// TouchMove updates the active touch gesture.
func (c *Controller) TouchMove(touches []geom.Point) bool {
	switch {
	case c.state == Panning && len(touches) == 1:
		c.t = c.pan.translated(touches[0])
		return true
	case c.state == Pinching && len(touches) >= 2:
		c.t = c.pinch.scaled(touches[0], touches[1], c.zoom)
		return true
	default:
		return false
	}
}

// TouchEnd handles a lifted finger. Any touch gesture ends; a new one
// starts with the next TouchStart.
func (c *Controller) TouchEnd() {
	c.reset()
}

// TouchCancel abandons the gesture. The transform keeps its last value.
func (c *Controller) TouchCancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.pan = panGesture{}
	c.pinch = pinchGesture{}
}

func (g panGesture) translated(p geom.Point) Transform {
	return Transform{
		K: g.start.K,
		X: g.start.X + (p.X - g.origin.X),
		Y: g.start.Y + (p.Y - g.origin.Y),
	}
}

// scaled rescales the start transform by the change in finger separation,
// anchored at the current finger midpoint.
func (g pinchGesture) scaled(a, b geom.Point, zoom ZoomOptions) Transform {
	k := zoom.Clamp(g.start.K * a.Dist(b) / g.distance)
	return zoomAround(g.start, geom.Midpoint(a, b), k)
}
