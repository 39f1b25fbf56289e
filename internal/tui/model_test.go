package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matsen/prayermap/internal/force"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

func testOptions() Options {
	return Options{
		Mode:   mindmap.ModeLists,
		Build:  mindmap.DefaultOptions(),
		Layout: force.DefaultParams(),
		Zoom:   viewport.DefaultZoomOptions(),
		Fit:    DefaultFitOptions(),
	}
}

func testSnapshot() *journal.Snapshot {
	return &journal.Snapshot{Lists: []journal.List{
		{ID: "l1", Title: "Family", Cards: []journal.Card{
			{ID: "c1", Title: "Health", Person: "Ana", Description: "Full recovery"},
			{ID: "c2", Title: "New job", Person: "Beto", IsAnswered: true},
		}},
		{ID: "l2", Title: "Church", Cards: []journal.Card{
			{ID: "c3", Title: "Youth camp", Person: "Ana, Carla"},
		}},
	}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func sized(t *testing.T) Model {
	t.Helper()
	m := New(testSnapshot(), testOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 28})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNew(t *testing.T) {
	m := New(testSnapshot(), testOptions())

	if got := len(m.Graph().Nodes); got != 6 {
		t.Errorf("lists mode nodes = %d, want 6", got)
	}
	root := m.Graph().Root()
	if root.Pos != m.opts.Build.Center {
		t.Errorf("root at %+v, want %+v", root.Pos, m.opts.Build.Center)
	}
	if m.Init() == nil {
		t.Error("Init() should schedule a fit")
	}
}

func TestResize_CentersOnce(t *testing.T) {
	m := sized(t)
	tr := m.Transform()
	if tr.K != viewport.InitialScale || tr.X != 40 || tr.Y != 24*cellAspect/2 {
		t.Errorf("after first resize transform = %+v", tr)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Transform() != tr {
		t.Errorf("second resize moved the view: %+v", m.Transform())
	}
}

func TestFitMsg(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, fitMsg{gen: m.gen})

	want, ok := viewport.Fit(m.Graph(), screenSize(80, 24), DefaultFitOptions())
	if !ok {
		t.Fatal("Fit() reported nothing to frame")
	}
	if m.Transform() != want {
		t.Errorf("transform = %+v, want %+v", m.Transform(), want)
	}
}

func TestModeToggle_DropsStaleFit(t *testing.T) {
	m := sized(t)
	oldGen := m.gen
	before := m.Transform()

	m, cmd := update(t, m, runes("m"))
	if m.Mode() != mindmap.ModePeople {
		t.Fatalf("Mode() = %q, want people", m.Mode())
	}
	if cmd == nil {
		t.Error("mode toggle should schedule a fit")
	}
	// 1 root + Ana, Beto, Carla + 4 person/card items
	if got := len(m.Graph().Nodes); got != 8 {
		t.Errorf("people mode nodes = %d, want 8", got)
	}

	m, _ = update(t, m, fitMsg{gen: oldGen})
	if m.Transform() != before {
		t.Error("fit for a previous graph should be ignored")
	}

	m, _ = update(t, m, runes("m"))
	if m.Mode() != mindmap.ModeLists {
		t.Errorf("second toggle Mode() = %q, want lists", m.Mode())
	}
}

func TestKeys_ZoomAndPan(t *testing.T) {
	m := sized(t)
	start := m.Transform()

	m, _ = update(t, m, runes("+"))
	if !near(m.Transform().K, start.K*KeyZoomFactor) {
		t.Errorf("zoom in K = %v, want %v", m.Transform().K, start.K*KeyZoomFactor)
	}
	m, _ = update(t, m, runes("-"))
	if !near(m.Transform().K, start.K) {
		t.Errorf("zoom out K = %v, want %v", m.Transform().K, start.K)
	}

	before := m.Transform()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if !near(m.Transform().X, before.X-PanStep) || m.Transform().Y != before.Y {
		t.Errorf("pan right transform = %+v, from %+v", m.Transform(), before)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if !near(m.Transform().Y, before.Y+PanStep) {
		t.Errorf("pan up Y = %v, want %v", m.Transform().Y, before.Y+PanStep)
	}
}

func TestActivate_NearestToCenter(t *testing.T) {
	m := sized(t)
	n, ok := m.Graph().Node("card-c3")
	if !ok {
		t.Fatal("card-c3 missing")
	}
	c := m.view.Size().Center()
	m.view.SetTransform(viewport.Transform{K: 1, X: c.X - n.Pos.X, Y: c.Y - n.Pos.Y})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	card, listID, ok := m.Selected()
	if !ok {
		t.Fatal("enter did not open a card")
	}
	if card.ID != "c3" || listID != "l2" {
		t.Errorf("opened %s in %s, want c3 in l2", card.ID, listID)
	}
	if !strings.Contains(m.View(), "Youth camp") {
		t.Error("View() should show the open card")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, _, ok := m.Selected(); ok {
		t.Error("esc should close the card")
	}
}

func TestMouse_Drag(t *testing.T) {
	m := sized(t)
	before := m.Transform()

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.view.State() != viewport.Panning {
		t.Fatalf("state after press = %s, want panning", m.view.State())
	}
	m, _ = update(t, m, tea.MouseMsg{X: 15, Y: 11, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 15, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

	if m.view.State() != viewport.Idle {
		t.Errorf("state after release = %s, want idle", m.view.State())
	}
	after := m.Transform()
	if !near(after.X, before.X+5) || after.Y != before.Y || after.K != before.K {
		t.Errorf("drag transform = %+v, from %+v", after, before)
	}
	if _, _, ok := m.Selected(); ok {
		t.Error("a drag should not open a card")
	}
}

func TestMouse_ClickOnEmptySpace(t *testing.T) {
	m := sized(t)
	// Push every node far off screen.
	m.view.SetTransform(viewport.Transform{K: 1, X: 10000, Y: 10000})

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

	if _, _, ok := m.Selected(); ok {
		t.Error("click on empty space opened a card")
	}
	if m.message != "no card here" {
		t.Errorf("message = %q", m.message)
	}
}

func TestMouse_Wheel(t *testing.T) {
	m := sized(t)
	k := m.Transform().K

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 12, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if !near(m.Transform().K, k*1.1) {
		t.Errorf("wheel up K = %v, want %v", m.Transform().K, k*1.1)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 12, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if !near(m.Transform().K, k) {
		t.Errorf("wheel down K = %v, want %v", m.Transform().K, k)
	}
}

func TestQuit(t *testing.T) {
	m := sized(t)
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := New(testSnapshot(), testOptions())
	if got := m.View(); got != "Initializing..." {
		t.Errorf("unsized View() = %q", got)
	}

	m = sized(t)
	v := m.View()
	for _, want := range []string{"Prayer Journal", "lists", "6 nodes"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	empty := New(&journal.Snapshot{}, testOptions())
	empty, _ = update(t, empty, tea.WindowSizeMsg{Width: 80, Height: 28})
	if !strings.Contains(empty.View(), "No prayer cards yet.") {
		t.Error("empty map should show the empty state")
	}

	empty, _ = update(t, empty, runes("f"))
	if empty.message != "nothing to fit" {
		t.Errorf("fit on empty map message = %q", empty.message)
	}
}
