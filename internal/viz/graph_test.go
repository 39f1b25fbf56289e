package viz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matsen/prayermap/internal/force"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

func testSettings(mode mindmap.Mode) Settings {
	return Settings{
		Mode:   mode,
		Size:   viewport.Size{Width: 800, Height: 600},
		Build:  mindmap.DefaultOptions(),
		Layout: force.DefaultParams(),
		Fit:    viewport.DefaultFitOptions(),
	}
}

func testSnapshot() *journal.Snapshot {
	return &journal.Snapshot{Lists: []journal.List{
		{ID: "l1", Title: "Family", Cards: []journal.Card{
			{ID: "c1", Title: "Health", Person: "Ana, Beto", Description: "Recovery"},
			{ID: "c2", Title: "Job <new>", IsAnswered: true},
		}},
		{ID: "l2", Title: "Church"},
	}}
}

func TestBuildScene(t *testing.T) {
	s, err := BuildScene(context.Background(), testSnapshot(), testSettings(mindmap.ModeLists))
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}

	if root := s.Graph.Root(); root.Pos.X != 400 || root.Pos.Y != 300 {
		t.Errorf("root at %+v, want container center", root.Pos)
	}
	if s.Transform.K <= 0 || s.Transform.K > 1.5 {
		t.Errorf("transform scale %v outside (0, 1.5]", s.Transform.K)
	}
	if err := s.Graph.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuildScene_Empty(t *testing.T) {
	s, err := BuildScene(context.Background(), &journal.Snapshot{}, testSettings(mindmap.ModePeople))
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	if s.Transform != viewport.Identity {
		t.Errorf("transform = %+v, want identity", s.Transform)
	}
	if !s.Data().IsEmpty() {
		t.Error("Data().IsEmpty() = false")
	}
}

func TestBuildScene_InvalidParams(t *testing.T) {
	settings := testSettings(mindmap.ModeLists)
	settings.Layout.Timestep = -1
	if _, err := BuildScene(context.Background(), testSnapshot(), settings); err == nil {
		t.Error("BuildScene() accepted a negative timestep")
	}
}

func TestFromGraph(t *testing.T) {
	s, err := BuildScene(context.Background(), testSnapshot(), testSettings(mindmap.ModeLists))
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}
	data := s.Data()

	if len(data.Nodes) != 5 || len(data.Edges) != 4 {
		t.Fatalf("got %d nodes, %d edges", len(data.Nodes), len(data.Edges))
	}
	for _, n := range data.Nodes {
		if n.ID == "card-c1" && (n.CardID != "c1" || n.ListID != "l1" || n.Description != "Recovery") {
			t.Errorf("item node = %+v", n)
		}
	}
	for _, e := range data.Edges {
		if !strings.HasPrefix(e.Path, "M ") {
			t.Errorf("edge %s path = %q", e.ID, e.Path)
		}
	}

	out, err := data.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	var decoded GraphData
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if decoded.Mode != "lists" {
		t.Errorf("mode = %q", decoded.Mode)
	}
}

func TestGenerateSVG(t *testing.T) {
	s, _ := BuildScene(context.Background(), testSnapshot(), testSettings(mindmap.ModeLists))
	svg, err := GenerateSVG(s.Data())
	if err != nil {
		t.Fatalf("GenerateSVG() error = %v", err)
	}

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="edge-root-l1"`,
		`>Family</text>`,
		`Job &lt;new&gt;`,
		`opacity="0.5"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, `id="root"`) {
		t.Error("root node should not be drawn")
	}
}

func TestGenerateHTML(t *testing.T) {
	s, _ := BuildScene(context.Background(), testSnapshot(), testSettings(mindmap.ModePeople))
	html, err := GenerateHTML(s.Data(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	if !strings.Contains(html, "<title>Prayer Map</title>") || !strings.Contains(html, `id="person-Ana"`) {
		t.Error("HTML missing title or person node")
	}

	empty, _ := BuildScene(context.Background(), nil, testSettings(mindmap.ModeLists))
	html, err = GenerateHTML(empty.Data(), HTMLOptions{})
	if err != nil {
		t.Fatalf("GenerateHTML(empty) error = %v", err)
	}
	if !strings.Contains(html, "Nothing to map yet") {
		t.Error("empty graph should render the empty state")
	}
}

func TestGenerate_Nil(t *testing.T) {
	if _, err := GenerateSVG(nil); err == nil {
		t.Error("GenerateSVG(nil) should fail")
	}
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML(nil) should fail")
	}
}

func TestRender_Format(t *testing.T) {
	s, _ := BuildScene(context.Background(), testSnapshot(), testSettings(mindmap.ModeLists))
	for _, f := range ValidFormats {
		if _, err := Render(s.Data(), f, DefaultOptions()); err != nil {
			t.Errorf("Render(%s) error = %v", f, err)
		}
	}
	if _, err := Render(s.Data(), "png", DefaultOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Render(png) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPillWidth(t *testing.T) {
	if got := pillWidth("Ana"); got != 24.5 {
		t.Errorf("pillWidth(Ana) = %v, want 24.5", got)
	}
	if got := pillWidth("Oração"); got != 41 {
		t.Errorf("pillWidth counts bytes instead of runes: %v", got)
	}
}
