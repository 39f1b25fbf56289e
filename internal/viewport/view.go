package viewport

import (
	"errors"
	"fmt"

	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/mindmap"
)

// InitialScale is the scale a view starts at before its first fit.
const InitialScale = 0.8

// View couples a Controller with the container it draws into.
type View struct {
	*Controller
	size  Size
	sized bool
	fit   FitOptions
}

// NewView returns a view that has not been sized yet.
func NewView(zoom ZoomOptions, fit FitOptions) *View {
	return &View{
		Controller: NewController(Transform{K: InitialScale}, zoom),
		fit:        fit,
	}
}

// Size returns the last observed container size.
func (v *View) Size() Size {
	return v.size
}

// Resize records a new container size. The first resize centers the
// origin in the container; later ones only affect the next fit.
func (v *View) Resize(s Size) {
	v.size = s
	if v.sized {
		return
	}
	v.sized = true
	t := v.Transform()
	c := s.Center()
	v.SetTransform(Transform{K: t.K, X: c.X, Y: c.Y})
}

// FitTo replaces the transform with one framing g. It reports false, and
// leaves the transform alone, when g has no non-root nodes.
func (v *View) FitTo(g *mindmap.Graph) bool {
	t, ok := Fit(g, v.size, v.fit)
	if ok {
		v.SetTransform(t)
	}
	return ok
}

// Event kinds understood by View.Handle.
const (
	EventWheel        = "wheel"
	EventPointerDown  = "pointerdown"
	EventPointerMove  = "pointermove"
	EventPointerUp    = "pointerup"
	EventPointerLeave = "pointerleave"
	EventTouchStart   = "touchstart"
	EventTouchMove    = "touchmove"
	EventTouchEnd     = "touchend"
	EventTouchCancel  = "touchcancel"
	EventResize       = "resize"
	EventFit          = "fit"
)

// ErrUnknownEvent is returned by Handle for an unrecognized event type.
var ErrUnknownEvent = errors.New("unknown event")

// ErrInvalidSize is returned by Handle for a resize without a positive
// width and height.
var ErrInvalidSize = errors.New("invalid container size")

// Event is one host input event in screen coordinates.
type Event struct {
	Type    string       `json:"type"`
	X       float64      `json:"x,omitempty"`
	Y       float64      `json:"y,omitempty"`
	DeltaY  float64      `json:"deltaY,omitempty"`
	Touches []geom.Point `json:"touches,omitempty"`
	Width   float64      `json:"width,omitempty"`
	Height  float64      `json:"height,omitempty"`
}

// Handle routes ev to the matching gesture method. g is used by fit
// events and may be nil otherwise.
func (v *View) Handle(ev Event, g *mindmap.Graph) error {
	at := geom.Pt(ev.X, ev.Y)
	switch ev.Type {
	case EventWheel:
		v.Wheel(at, ev.DeltaY)
	case EventPointerDown:
		v.PointerDown(at)
	case EventPointerMove:
		v.PointerMove(at)
	case EventPointerUp, EventPointerLeave:
		v.PointerUp()
	case EventTouchStart:
		v.TouchStart(ev.Touches)
	case EventTouchMove:
		v.TouchMove(ev.Touches)
	case EventTouchEnd:
		v.TouchEnd()
	case EventTouchCancel:
		v.TouchCancel()
	case EventResize:
		if !(ev.Width > 0 && ev.Height > 0) {
			return fmt.Errorf("%w %vx%v", ErrInvalidSize, ev.Width, ev.Height)
		}
		v.Resize(Size{Width: ev.Width, Height: ev.Height})
	case EventFit:
		if g != nil {
			v.FitTo(g)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}
