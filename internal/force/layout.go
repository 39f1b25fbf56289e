package force

import (
	"context"
	"math"

	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/mindmap"
)

// body is the per-node simulation record. Velocity lives only here and is
// discarded when the run ends.
type body struct {
	pos    geom.Point
	vel    geom.Point
	pinned bool
}

// spring is an edge resolved to body indices.
type spring struct {
	a, b int
	rest float64
}

// Layout runs the simulation to completion and returns a new graph with
// relaxed positions and edge paths. g is not modified.
func Layout(g mindmap.Graph, p Params) mindmap.Graph {
	out, _ := Run(context.Background(), g, p)
	return out
}

// Run is Layout with cooperative cancellation: when p.YieldEvery > 0 the
// context is checked every YieldEvery iterations and its error returned.
// On cancellation the returned graph is a copy of g with paths computed
// from the seed positions.
func Run(ctx context.Context, g mindmap.Graph, p Params) (mindmap.Graph, error) {
	out := g.Clone()
	bodies, springs := prepare(&out, p)

	if len(bodies) >= 2 {
		for iter := 0; iter < p.Iterations; iter++ {
			step(bodies, springs, p)

			if p.YieldEvery > 0 && (iter+1)%p.YieldEvery == 0 {
				if err := ctx.Err(); err != nil {
					setPaths(&out, p.CurveBend)
					return out, err
				}
			}
		}

		for i := range bodies {
			out.Nodes[i].Pos = bodies[i].pos
		}
		recenter(&out)
	}

	setPaths(&out, p.CurveBend)
	return out, nil
}

func prepare(g *mindmap.Graph, p Params) ([]body, []spring) {
	bodies := make([]body, len(g.Nodes))
	for i, n := range g.Nodes {
		bodies[i] = body{pos: n.Pos, pinned: n.Type == mindmap.NodeTypeRoot}
	}

	idx := g.NodeIndex()
	springs := make([]spring, 0, len(g.Edges))
	for _, e := range g.Edges {
		a, okA := idx[e.Source]
		b, okB := idx[e.Target]
		if !okA || !okB {
			continue
		}
		springs = append(springs, spring{a: a, b: b, rest: p.restLength(g.Nodes[a].Type)})
	}
	return bodies, springs
}

// step advances the simulation by one iteration.
func step(bodies []body, springs []spring, p Params) {
	for i := range bodies {
		bodies[i].vel = geom.Point{}
	}

	repel(bodies, p)
	pull(bodies, springs, p)

	for i := range bodies {
		b := &bodies[i]
		if b.pinned {
			continue
		}
		b.pos = b.pos.Add(b.vel.Scale(p.Timestep))
		b.vel = b.vel.Scale(p.Damping)
	}
}

// repel applies inverse-square repulsion to every unordered pair. Squared
// distances are floored at MinDistance^2; coincident pairs exert nothing.
func repel(bodies []body, p Params) {
	minSq := p.MinDistance * p.MinDistance
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].pos.Sub(bodies[j].pos)
			distSq := d.X*d.X + d.Y*d.Y
			if distSq == 0 {
				// Coincident nodes have no direction to push along.
				continue
			}
			if distSq < minSq {
				distSq = minSq
			}
			f := d.Scale(p.Repulsion / distSq / math.Sqrt(distSq))

			if !bodies[i].pinned {
				bodies[i].vel = bodies[i].vel.Add(f)
			}
			if !bodies[j].pinned {
				bodies[j].vel = bodies[j].vel.Sub(f)
			}
		}
	}
}

// pull applies Hooke springs, half the force to each unpinned endpoint.
func pull(bodies []body, springs []spring, p Params) {
	for _, s := range springs {
		src, dst := &bodies[s.a], &bodies[s.b]
		d := dst.pos.Sub(src.pos)
		dist := math.Hypot(d.X, d.Y)
		if dist == 0 {
			dist = 1
		}
		force := p.Spring * (dist - s.rest)
		f := d.Scale(force / dist / 2)

		if !src.pinned {
			src.vel = src.vel.Add(f)
		}
		if !dst.pinned {
			dst.vel = dst.vel.Sub(f)
		}
	}
}

// recenter translates every node so the root sits on g.Center.
func recenter(g *mindmap.Graph) {
	root := g.Root()
	if root == nil {
		return
	}
	shift := g.Center.Sub(root.Pos)
	for i := range g.Nodes {
		g.Nodes[i].Pos = g.Nodes[i].Pos.Add(shift)
	}
	// Pin exactly; the float shift above can be off by an ulp.
	root.Pos = g.Center
}

// setPaths recomputes edge curves from the current positions. Edges whose
// endpoints are missing get no path.
func setPaths(g *mindmap.Graph, bend float64) {
	idx := g.NodeIndex()
	for i := range g.Edges {
		e := &g.Edges[i]
		a, okA := idx[e.Source]
		b, okB := idx[e.Target]
		if !okA || !okB {
			e.Path = nil
			continue
		}
		c := geom.CurveBetween(g.Nodes[a].Pos, g.Nodes[b].Pos, bend)
		e.Path = &c
	}
}
