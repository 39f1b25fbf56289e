// Package viz renders a laid-out mind map as JSON, SVG or a standalone
// HTML page.
package viz

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

// GraphData contains all data needed to draw the map.
type GraphData struct {
	Mode      string             `json:"mode"`
	Size      viewport.Size      `json:"size"`
	Transform viewport.Transform `json:"transform"`
	Nodes     []Node             `json:"nodes"`
	Edges     []Edge             `json:"edges"`
}

// Node is a positioned vertex.
type Node struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"` // "root", "category" or "item"
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`

	// Item-specific fields (for click dispatch and tooltips)
	CardID      string `json:"cardId,omitempty"`
	ListID      string `json:"listId,omitempty"`
	Description string `json:"description,omitempty"`
	Answered    bool   `json:"answered,omitempty"`
}

// Edge is a curved connector.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Color  string `json:"color"`
	Path   string `json:"path"` // SVG path data; empty when an endpoint is missing
}

// FromGraph converts a laid-out graph and its view transform.
func FromGraph(g *mindmap.Graph, mode mindmap.Mode, size viewport.Size, t viewport.Transform) *GraphData {
	data := &GraphData{
		Mode:      string(mode),
		Size:      size,
		Transform: t,
		Nodes:     make([]Node, 0, len(g.Nodes)),
		Edges:     make([]Edge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		data.Nodes = append(data.Nodes, newNode(n))
	}
	for _, e := range g.Edges {
		edge := Edge{ID: e.ID, Source: e.Source, Target: e.Target, Color: e.Color}
		if e.Path != nil {
			edge.Path = e.Path.SVGPath()
		}
		data.Edges = append(data.Edges, edge)
	}
	return data
}

func newNode(n mindmap.Node) Node {
	out := Node{
		ID:    n.ID,
		Type:  string(n.Type),
		Label: n.Label,
		X:     n.Pos.X,
		Y:     n.Pos.Y,
		Color: n.Color,
	}
	if c := n.Payload.Card; c != nil {
		out.CardID = c.ID
		out.ListID = n.Payload.ListID
		out.Description = c.Description
		out.Answered = c.IsAnswered
	}
	return out
}

// IsEmpty returns true if the graph has nothing besides its root.
func (g *GraphData) IsEmpty() bool {
	for _, n := range g.Nodes {
		if n.Type != string(mindmap.NodeTypeRoot) {
			return false
		}
	}
	return true
}

// ToJSON encodes the graph as indented JSON.
func (g *GraphData) ToJSON() (string, error) {
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling graph to JSON: %w", err)
	}
	return string(b), nil
}
