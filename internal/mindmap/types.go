// Package mindmap turns a journal snapshot into the tree-shaped graph drawn
// by the mind map view: one root, one node per category (a list or a
// person) and one node per card under its category.
package mindmap

import (
	"errors"
	"fmt"

	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/journal"
)

// NodeType is the role of a node in the tree.
type NodeType string

const (
	NodeTypeRoot     NodeType = "root"
	NodeTypeCategory NodeType = "category"
	NodeTypeItem     NodeType = "item"
)

// RootID is the id of the single root node.
const RootID = "root"

// Node is a vertex of the mind map.
type Node struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Type  NodeType   `json:"type"`
	Pos   geom.Point `json:"pos"`
	Color string     `json:"color"`

	// Payload points back at the journal record. Only click dispatch and
	// renderers read it; the simulation never does.
	Payload Payload `json:"-"`
}

// Payload links a node to the record it was built from.
type Payload struct {
	List   *journal.List // category node in lists mode
	Person string        // category node in people mode
	Card   *journal.Card // item node
	ListID string        // list owning Card
}

// Edge connects root to a category or a category to an item.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Color  string `json:"color"`

	// Path is derived from the endpoint positions after layout. It is nil
	// until the graph has been laid out, or when an endpoint is missing.
	Path *geom.QuadCurve `json:"path,omitempty"`
}

// Graph is a mind map: nodes with positions plus the edges between them.
// Center is the viewport center the root is pinned to.
type Graph struct {
	Center geom.Point `json:"center"`
	Nodes  []Node     `json:"nodes"`
	Edges  []Edge     `json:"edges"`
}

// IsEmpty reports whether the graph has nothing besides the root.
func (g *Graph) IsEmpty() bool {
	for _, n := range g.Nodes {
		if n.Type != NodeTypeRoot {
			return false
		}
	}
	return true
}

// NodeIndex maps node ids to their slice index.
func (g *Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Root returns the root node, or nil if the graph has none.
func (g *Graph) Root() *Node {
	for i := range g.Nodes {
		if g.Nodes[i].Type == NodeTypeRoot {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Categories returns the category nodes in build order.
func (g *Graph) Categories() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Type == NodeTypeCategory {
			out = append(out, n)
		}
	}
	return out
}

// Children returns the ids of the targets of edges leaving id.
func (g *Graph) Children(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// Clone returns a deep copy that shares only the read-only payload records.
func (g *Graph) Clone() Graph {
	out := Graph{
		Center: g.Center,
		Nodes:  make([]Node, len(g.Nodes)),
		Edges:  make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	for i := range out.Edges {
		if p := out.Edges[i].Path; p != nil {
			c := *p
			out.Edges[i].Path = &c
		}
	}
	return out
}

// ActivateFunc receives the card behind an activated item node and the id
// of the list that owns it.
type ActivateFunc func(card journal.Card, listID string)

// Activate dispatches a click on node id. Only item nodes fire; the return
// value reports whether fn was called.
func (g *Graph) Activate(id string, fn ActivateFunc) bool {
	n, ok := g.Node(id)
	if !ok || n.Type != NodeTypeItem || n.Payload.Card == nil {
		return false
	}
	if fn != nil {
		fn(*n.Payload.Card, n.Payload.ListID)
	}
	return true
}

// Validate checks the tree invariants: exactly one root, unique ids, edge
// endpoints that exist, and exactly one inbound edge for every non-root node.
func (g *Graph) Validate() error {
	roots := 0
	ids := make(map[string]NodeType, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = n.Type
		if n.Type == NodeTypeRoot {
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("graph has %d root nodes, want 1", roots)
	}

	inbound := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			return fmt.Errorf("edge %q: unknown source %q", e.ID, e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return fmt.Errorf("edge %q: unknown target %q", e.ID, e.Target)
		}
		inbound[e.Target]++
	}

	for id, typ := range ids {
		switch {
		case typ == NodeTypeRoot && inbound[id] != 0:
			return errors.New("root node has inbound edges")
		case typ != NodeTypeRoot && inbound[id] != 1:
			return fmt.Errorf("node %q has %d inbound edges, want 1", id, inbound[id])
		}
	}
	return nil
}
