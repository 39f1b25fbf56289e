package viz

import (
	"context"
	"fmt"

	"github.com/matsen/prayermap/internal/force"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

// Settings gathers everything needed to go from a snapshot to a framed map.
type Settings struct {
	Mode   mindmap.Mode
	Size   viewport.Size
	Build  mindmap.Options
	Layout force.Params
	Fit    viewport.FitOptions
}

// Scene is a laid-out graph together with the transform that frames it.
type Scene struct {
	Mode      mindmap.Mode
	Size      viewport.Size
	Graph     mindmap.Graph
	Transform viewport.Transform
}

// BuildScene builds the graph for snap, relaxes it and fits it to the view.
// The graph is centered on the container; an empty map keeps the identity
// transform.
func BuildScene(ctx context.Context, snap *journal.Snapshot, s Settings) (*Scene, error) {
	if err := s.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout parameters: %w", err)
	}

	opts := s.Build
	opts.Center = s.Size.Center()
	seeded := mindmap.Build(snap, s.Mode, opts)

	laid, err := force.Run(ctx, seeded, s.Layout)
	if err != nil {
		return nil, fmt.Errorf("running layout: %w", err)
	}

	t, ok := viewport.Fit(&laid, s.Size, s.Fit)
	if !ok {
		t = viewport.Identity
	}

	return &Scene{Mode: s.Mode, Size: s.Size, Graph: laid, Transform: t}, nil
}

// Data returns the JSON view of the scene.
func (s *Scene) Data() *GraphData {
	return FromGraph(&s.Graph, s.Mode, s.Size, s.Transform)
}
