package force

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/matsen/prayermap/internal/mindmap"
)

func sampleGraph() mindmap.Graph {
	snap := &journal.Snapshot{Lists: []journal.List{
		{ID: "l1", Title: "Family", Cards: []journal.Card{
			{ID: "c1", Title: "Health"}, {ID: "c2", Title: "Job"}, {ID: "c3", Title: "Trip"},
		}},
		{ID: "l2", Title: "Church", Cards: []journal.Card{{ID: "c4", Title: "Choir"}}},
		{ID: "l3", Title: "Work"},
	}}
	return mindmap.Build(snap, mindmap.ModeLists, mindmap.DefaultOptions())
}

func TestLayout_Deterministic(t *testing.T) {
	g := sampleGraph()
	a := Layout(g, DefaultParams())
	b := Layout(g, DefaultParams())

	for i := range a.Nodes {
		if a.Nodes[i].Pos != b.Nodes[i].Pos {
			t.Errorf("node %s: %+v != %+v", a.Nodes[i].ID, a.Nodes[i].Pos, b.Nodes[i].Pos)
		}
	}
}

func TestLayout_RootAtCenter(t *testing.T) {
	g := sampleGraph()
	g.Center = geom.Pt(640, 360)
	out := Layout(g, DefaultParams())

	if root := out.Root(); root.Pos != g.Center {
		t.Errorf("root at %+v, want %+v", root.Pos, g.Center)
	}
}

func TestLayout_DoesNotMutateInput(t *testing.T) {
	g := sampleGraph()
	before := g.Clone()
	out := Layout(g, DefaultParams())

	if !reflect.DeepEqual(before.Nodes, g.Nodes) {
		t.Error("input nodes were modified")
	}
	for _, e := range g.Edges {
		if e.Path != nil {
			t.Errorf("input edge %s gained a path", e.ID)
		}
	}

	moved := false
	for i := range out.Nodes {
		if out.Nodes[i].Pos != g.Nodes[i].Pos {
			moved = true
		}
	}
	if !moved {
		t.Error("layout did not move any node")
	}
}

func TestLayout_PathsFollowEndpoints(t *testing.T) {
	out := Layout(sampleGraph(), DefaultParams())
	idx := out.NodeIndex()

	for _, e := range out.Edges {
		if e.Path == nil {
			t.Fatalf("edge %s has no path", e.ID)
		}
		if e.Path.From != out.Nodes[idx[e.Source]].Pos || e.Path.To != out.Nodes[idx[e.Target]].Pos {
			t.Errorf("edge %s path endpoints do not match node positions", e.ID)
		}
	}
}

func TestLayout_MissingEndpointSkipped(t *testing.T) {
	g := sampleGraph()
	g.Edges = append(g.Edges, mindmap.Edge{ID: "ghost", Source: "list-l1", Target: "nowhere"})

	out := Layout(g, DefaultParams())
	last := out.Edges[len(out.Edges)-1]
	if last.Path != nil {
		t.Errorf("dangling edge got path %+v", last.Path)
	}
}

func TestLayout_Degenerate(t *testing.T) {
	root := mindmap.Graph{
		Center: geom.Pt(10, 10),
		Nodes:  []mindmap.Node{{ID: mindmap.RootID, Type: mindmap.NodeTypeRoot, Pos: geom.Pt(3, 4)}},
	}
	out := Layout(root, DefaultParams())
	if out.Nodes[0].Pos != geom.Pt(3, 4) {
		t.Errorf("single node moved to %+v", out.Nodes[0].Pos)
	}

	empty := Layout(mindmap.Graph{}, DefaultParams())
	if len(empty.Nodes) != 0 || len(empty.Edges) != 0 {
		t.Errorf("empty graph grew: %+v", empty)
	}
}

func TestLayout_CoincidentNodesFinite(t *testing.T) {
	g := mindmap.Graph{Nodes: []mindmap.Node{
		{ID: mindmap.RootID, Type: mindmap.NodeTypeRoot},
		{ID: "a", Type: mindmap.NodeTypeCategory, Pos: geom.Pt(5, 5)},
		{ID: "b", Type: mindmap.NodeTypeCategory, Pos: geom.Pt(5, 5)},
	}}
	out := Layout(g, DefaultParams())

	for _, n := range out.Nodes {
		if math.IsNaN(n.Pos.X) || math.IsNaN(n.Pos.Y) || math.IsInf(n.Pos.X, 0) || math.IsInf(n.Pos.Y, 0) {
			t.Fatalf("node %s has non-finite position %+v", n.ID, n.Pos)
		}
	}
	// Root repels both equally and they exert nothing on each other.
	if d := out.Nodes[1].Pos.Dist(out.Nodes[2].Pos); d > 1e-9 {
		t.Errorf("coincident nodes drifted apart by %v", d)
	}
}

func TestLayout_CoincidentPairExertsNoForce(t *testing.T) {
	g := mindmap.Graph{Center: geom.Pt(-1e6, 0), Nodes: []mindmap.Node{
		{ID: mindmap.RootID, Type: mindmap.NodeTypeRoot, Pos: geom.Pt(-1e6, 0)},
		{ID: "a", Type: mindmap.NodeTypeItem, Pos: geom.Pt(0, 0)},
		{ID: "b", Type: mindmap.NodeTypeItem, Pos: geom.Pt(0, 0)},
	}}
	p := DefaultParams()
	p.Iterations = 1

	out := Layout(g, p)
	for _, n := range out.Nodes[1:] {
		if n.Pos.Y != 0 {
			t.Errorf("node %s moved off the x axis: %+v", n.ID, n.Pos)
		}
		if n.Pos.X < 0 || n.Pos.X > 1e-3 {
			t.Errorf("node %s moved by %+v, want only the root's push", n.ID, n.Pos)
		}
	}
}

func TestLayout_SpringSettlesAtRestLength(t *testing.T) {
	g := mindmap.Graph{
		Nodes: []mindmap.Node{
			{ID: mindmap.RootID, Type: mindmap.NodeTypeRoot},
			{ID: "cat", Type: mindmap.NodeTypeCategory, Pos: geom.Pt(0, -180)},
		},
		Edges: []mindmap.Edge{{ID: "e", Source: mindmap.RootID, Target: "cat"}},
	}
	p := DefaultParams()
	p.Repulsion = 0
	p.Iterations = 5000

	out := Layout(g, p)
	if d := out.Nodes[1].Pos.Dist(out.Nodes[0].Pos); math.Abs(d-p.RootRestLength) > 0.01 {
		t.Errorf("category settled at %v, want %v", d, p.RootRestLength)
	}
}

func TestLayout_RepulsionSeparates(t *testing.T) {
	g := mindmap.Graph{Nodes: []mindmap.Node{
		{ID: mindmap.RootID, Type: mindmap.NodeTypeRoot, Pos: geom.Pt(-1000, -1000)},
		{ID: "a", Type: mindmap.NodeTypeItem, Pos: geom.Pt(0, 0)},
		{ID: "b", Type: mindmap.NodeTypeItem, Pos: geom.Pt(10, 0)},
	}}
	g.Center = geom.Pt(-1000, -1000)
	out := Layout(g, DefaultParams())

	if d := out.Nodes[1].Pos.Dist(out.Nodes[2].Pos); d <= 10 {
		t.Errorf("unconnected nodes did not move apart: distance %v", d)
	}
}

func TestLayout_ZeroIterations(t *testing.T) {
	g := sampleGraph()
	p := DefaultParams()
	p.Iterations = 0

	out := Layout(g, p)
	for i := range out.Nodes {
		if out.Nodes[i].Pos != g.Nodes[i].Pos {
			t.Errorf("node %s moved with zero iterations", out.Nodes[i].ID)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DefaultParams()
	p.YieldEvery = 10
	_, err := Run(ctx, sampleGraph(), p)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRun_IgnoresContextWithoutYield(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Run(ctx, sampleGraph(), DefaultParams())
	if err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if out.Root().Pos != out.Center {
		t.Error("layout did not finish")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("DefaultParams().Validate() = %v", err)
	}

	bad := DefaultParams()
	bad.Damping = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted damping > 1")
	}

	bad = DefaultParams()
	bad.Timestep = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted zero timestep")
	}
}
