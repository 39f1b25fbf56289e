package viewport

import (
	"math"
	"time"

	"github.com/matsen/prayermap/internal/mindmap"
)

// FitDelay is how long an interactive frontend waits after a rebuild before
// fitting, so the new layout has been drawn once.
const FitDelay = 350 * time.Millisecond

// FitOptions controls Fit.
type FitOptions struct {
	Padding  float64 `yaml:"padding" json:"padding" validate:"gte=0"`
	MaxScale float64 `yaml:"max_scale" json:"max_scale" validate:"gt=0"`
}

// DefaultFitOptions returns an 80-unit margin and a 1.5x zoom-in cap.
func DefaultFitOptions() FitOptions {
	return FitOptions{Padding: 80, MaxScale: 1.5}
}

// Fit frames the bounding box of every non-root node in a container of the
// given size. It reports false when there is nothing to frame.
//
// A box thinner than one unit on either axis is shown at scale 1 with its
// midpoint centered. Otherwise the scale is the smaller of the two axis
// fits, capped at MaxScale, and the box midpoint is centered.
func Fit(g *mindmap.Graph, size Size, opts FitOptions) (Transform, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, n := range g.Nodes {
		if n.Type == mindmap.NodeTypeRoot {
			continue
		}
		found = true
		minX = math.Min(minX, n.Pos.X)
		maxX = math.Max(maxX, n.Pos.X)
		minY = math.Min(minY, n.Pos.Y)
		maxY = math.Max(maxY, n.Pos.Y)
	}
	if !found {
		return Transform{}, false
	}

	w, h := maxX-minX, maxY-minY
	midX, midY := minX+w/2, minY+h/2
	center := size.Center()

	if w < 1 || h < 1 {
		return Transform{K: 1, X: center.X - midX, Y: center.Y - midY}, true
	}

	sx := (size.Width - opts.Padding*2) / w
	sy := (size.Height - opts.Padding*2) / h
	k := math.Min(math.Min(sx, sy), opts.MaxScale)
	if k <= 0 {
		// Container smaller than its padding; keep the graph visible.
		k = math.Min(math.Min(size.Width/w, size.Height/h), opts.MaxScale)
	}
	if k <= 0 {
		k = 1
	}

	return Transform{K: k, X: center.X - midX*k, Y: center.Y - midY*k}, true
}
