// Package tui is the interactive terminal frontend for the prayer map.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matsen/prayermap/internal/force"
	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/journal"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#8B5CF6")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Rows taken by the header, the two status lines and the help line.
const chromeRows = 4

// PanStep is how far, in columns, one arrow key press pans the map.
const PanStep = 4

// KeyZoomFactor is the zoom step of the +/- keys.
const KeyZoomFactor = 1.25

// Options configures a Model.
type Options struct {
	Mode     mindmap.Mode
	Build    mindmap.Options
	Layout   force.Params
	Zoom     viewport.ZoomOptions
	Fit      viewport.FitOptions
	FitDelay time.Duration
}

// DefaultFitOptions suits terminal cells: two columns of margin and no
// zoom-in cap beyond the usual one.
func DefaultFitOptions() viewport.FitOptions {
	return viewport.FitOptions{Padding: 2, MaxScale: 1.5}
}

// fitMsg asks the model to fit the graph built in generation gen.
type fitMsg struct{ gen int }

// selection is the card opened by the last activation.
type selection struct {
	nodeID string
	card   journal.Card
	listID string
}

// Model is the bubbletea model for the interactive map.
type Model struct {
	snap  *journal.Snapshot
	opts  Options
	graph mindmap.Graph
	view  *viewport.View
	gen   int

	keys   keyMap
	help   help.Model
	width  int
	height int

	press    *geom.Point
	selected *selection
	message  string
	err      error
}

// New builds and lays out the map for snap.
func New(snap *journal.Snapshot, opts Options) Model {
	m := Model{
		snap: snap,
		opts: opts,
		view: viewport.NewView(opts.Zoom, opts.Fit),
		keys: keys,
		help: help.New(),
	}
	m.rebuild()
	return m
}

// Graph returns the laid-out graph currently shown.
func (m Model) Graph() *mindmap.Graph {
	return &m.graph
}

// Mode returns the current grouping mode.
func (m Model) Mode() mindmap.Mode {
	return m.opts.Mode
}

// Transform returns the current view transform.
func (m Model) Transform() viewport.Transform {
	return m.view.Transform()
}

// Selected returns the card opened by the last activation, if any.
func (m Model) Selected() (journal.Card, string, bool) {
	if m.selected == nil {
		return journal.Card{}, "", false
	}
	return m.selected.card, m.selected.listID, true
}

// rebuild constructs and lays out the graph for the current mode. Each
// rebuild starts a new generation so fits scheduled for an older graph
// are dropped.
func (m *Model) rebuild() {
	m.gen++
	m.selected = nil
	g := mindmap.Build(m.snap, m.opts.Mode, m.opts.Build)
	laid, err := force.Run(context.Background(), g, m.opts.Layout)
	if err != nil {
		m.err = err
		return
	}
	m.graph = laid
	m.err = nil
}

// scheduleFit fits the current generation after the configured delay.
func (m Model) scheduleFit() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.opts.FitDelay, func(time.Time) tea.Msg {
		return fitMsg{gen: gen}
	})
}

func (m Model) Init() tea.Cmd {
	return m.scheduleFit()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.view.Resize(screenSize(m.canvasSize()))

	case fitMsg:
		if msg.gen == m.gen {
			m.view.FitTo(&m.graph)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ZoomIn):
			m.view.ZoomBy(m.view.Size().Center(), KeyZoomFactor)
		case key.Matches(msg, m.keys.ZoomOut):
			m.view.ZoomBy(m.view.Size().Center(), 1/KeyZoomFactor)
		case key.Matches(msg, m.keys.Up):
			m.view.PanBy(geom.Pt(0, PanStep))
		case key.Matches(msg, m.keys.Down):
			m.view.PanBy(geom.Pt(0, -PanStep))
		case key.Matches(msg, m.keys.Left):
			m.view.PanBy(geom.Pt(PanStep, 0))
		case key.Matches(msg, m.keys.Right):
			m.view.PanBy(geom.Pt(-PanStep, 0))
		case key.Matches(msg, m.keys.Fit):
			if !m.view.FitTo(&m.graph) {
				m.message = "nothing to fit"
			}
		case key.Matches(msg, m.keys.Mode):
			if m.opts.Mode == mindmap.ModeLists {
				m.opts.Mode = mindmap.ModePeople
			} else {
				m.opts.Mode = mindmap.ModeLists
			}
			m.rebuild()
			m.message = ""
			return m, m.scheduleFit()
		case key.Matches(msg, m.keys.Activate):
			m.activateNearest(m.view.Size().Center(), 0)
		case key.Matches(msg, m.keys.Clear):
			m.selected = nil
			m.message = ""
		}
	}

	return m, nil
}

// handleMouse turns terminal mouse events into viewport gestures. A press
// and release on the same cell is a click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := toScreen(msg.X, msg.Y-1)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.Wheel(p, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.Wheel(p, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press = &p
		m.view.PointerDown(p)
	case msg.Action == tea.MouseActionMotion:
		m.view.PointerMove(p)
	case msg.Action == tea.MouseActionRelease:
		m.view.PointerUp()
		if m.press != nil && *m.press == p {
			m.activateNearest(p, cellAspect*2)
		}
		m.press = nil
	}
}

// activateNearest opens the item node closest to the screen point at.
// A positive radius limits the search to that many screen units.
func (m *Model) activateNearest(at geom.Point, radius float64) {
	t := m.view.Transform()
	best, bestDist := "", 0.0
	for _, n := range m.graph.Nodes {
		if n.Type != mindmap.NodeTypeItem {
			continue
		}
		d := t.Apply(n.Pos).Dist(at)
		if radius > 0 && d > radius {
			continue
		}
		if best == "" || d < bestDist {
			best, bestDist = n.ID, d
		}
	}

	if best == "" {
		m.message = "no card here"
		return
	}
	m.graph.Activate(best, func(card journal.Card, listID string) {
		m.selected = &selection{nodeID: best, card: card, listID: listID}
		m.message = ""
	})
}

// canvasSize returns the columns and rows left for the map.
func (m Model) canvasSize() (int, int) {
	return m.width, max(m.height-chromeRows, 1)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	t := m.view.Transform()
	s.WriteString(titleStyle.Render(m.opts.Build.RootLabel))
	s.WriteString(" ")
	s.WriteString(modeStyle.Render(string(m.opts.Mode)))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %d nodes  zoom %.0f%%  %s",
		len(m.graph.Nodes), t.K*100, m.view.State())))
	s.WriteString("\n")

	w, h := m.canvasSize()
	c := newCanvas(w, h)
	if m.graph.IsEmpty() {
		c.text(max(w/2-10, 0), h/2, "No prayer cards yet.", cell{faint: true})
	} else {
		selected := ""
		if m.selected != nil {
			selected = m.selected.nodeID
		}
		c.draw(&m.graph, t, selected)
	}
	s.WriteString(c.String())
	s.WriteString("\n")

	s.WriteString(m.statusLines())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

// statusLines renders the two lines under the map: the open card, or an
// error or message.
func (m Model) statusLines() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("✗ "+m.err.Error()) + "\n"
	case m.selected != nil:
		card := m.selected.card
		state := "open"
		if card.IsAnswered {
			state = "answered"
		}
		head := cardTitleStyle.Render(card.Title) + statusStyle.Render(
			fmt.Sprintf("  [%s] %s", state, listTitle(m.snap, m.selected.listID)))
		return head + "\n" + truncate(card.Description, max(m.width, 1))
	default:
		return statusStyle.Render(m.message) + "\n"
	}
}

// listTitle finds the title of the list with the given id.
func listTitle(snap *journal.Snapshot, id string) string {
	if snap == nil {
		return ""
	}
	for _, l := range snap.Lists {
		if l.ID == id {
			return l.Title
		}
	}
	return ""
}
