package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matsen/prayermap/internal/geom"
	"github.com/matsen/prayermap/internal/mindmap"
	"github.com/matsen/prayermap/internal/viewport"
)

// cellAspect is how many screen units tall one terminal row is. Columns
// are one unit wide, so a cell is treated as twice as tall as it is wide.
const cellAspect = 2

// maxLabel caps node labels, in runes.
const maxLabel = 18

const (
	glyphRoot     = '◉'
	glyphCategory = '◆'
	glyphItem     = '●'
	glyphAnswered = '○'
	glyphEdge     = '·'
)

type cell struct {
	r     rune
	color string
	bold  bool
	faint bool
	rev   bool
}

// canvas is a grid of terminal cells addressed by column and row.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]cell, c.h)
	for i := range c.cells {
		row := make([]cell, c.w)
		for j := range row {
			row[j].r = ' '
		}
		c.cells[i] = row
	}
	return c
}

// screenSize is the viewport size a canvas of w columns and h rows covers.
func screenSize(w, h int) viewport.Size {
	return viewport.Size{Width: float64(w), Height: float64(h * cellAspect)}
}

// toCell maps a screen point to the cell containing it.
func toCell(p geom.Point) (col, row int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / cellAspect))
}

// toScreen maps the centre of a cell to screen space.
func toScreen(col, row int) geom.Point {
	return geom.Pt(float64(col)+0.5, (float64(row)+0.5)*cellAspect)
}

func (c *canvas) set(col, row int, v cell) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.cells[row][col] = v
}

func (c *canvas) text(col, row int, s string, style cell) {
	for _, r := range s {
		style.r = r
		c.set(col, row, style)
		col++
	}
}

// lines returns the canvas without styling.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for i, row := range c.cells {
		var sb strings.Builder
		for _, v := range row {
			sb.WriteRune(v.r)
		}
		out[i] = sb.String()
	}
	return out
}

// String renders the canvas, grouping runs of equally styled cells.
func (c *canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameStyle(row[j], row[start]) {
				continue
			}
			var run strings.Builder
			for _, v := range row[start:j] {
				run.WriteRune(v.r)
			}
			sb.WriteString(styleOf(row[start]).Render(run.String()))
			start = j
		}
	}
	return sb.String()
}

func sameStyle(a, b cell) bool {
	return a.color == b.color && a.bold == b.bold && a.faint == b.faint && a.rev == b.rev
}

func styleOf(v cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(v.bold).Faint(v.faint).Reverse(v.rev)
	if v.color != "" {
		s = s.Foreground(lipgloss.Color(v.color))
	}
	return s
}

// draw renders g through t onto c. Edges go first so node glyphs and
// labels sit on top of them.
func (c *canvas) draw(g *mindmap.Graph, t viewport.Transform, selected string) {
	for _, e := range g.Edges {
		if e.Path == nil {
			continue
		}
		a, b := t.Apply(e.Path.From), t.Apply(e.Path.To)
		steps := max(8, int(a.Dist(b)))
		for i := 1; i < steps; i++ {
			col, row := toCell(t.Apply(e.Path.At(float64(i) / float64(steps))))
			c.set(col, row, cell{r: glyphEdge, color: e.Color, faint: true})
		}
	}

	for _, n := range g.Nodes {
		col, row := toCell(t.Apply(n.Pos))
		style := cell{color: n.Color, rev: n.ID == selected}
		label := truncate(n.Label, maxLabel)

		switch n.Type {
		case mindmap.NodeTypeRoot:
			style.bold = true
			style.r = glyphRoot
			c.set(col, row, style)
			c.text(col-len([]rune(label))/2, row+1, label, style)
		case mindmap.NodeTypeCategory:
			style.bold = true
			style.r = glyphCategory
			c.set(col, row, style)
			c.text(col+2, row, label, style)
		default:
			style.r = glyphItem
			if n.Payload.Card != nil && n.Payload.Card.IsAnswered {
				style.r = glyphAnswered
				style.faint = true
			}
			c.set(col, row, style)
			c.text(col+2, row, label, cell{faint: style.faint, rev: style.rev})
		}
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
