package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/snapshot"
)

type cellKind uint8

// Higher kinds are drawn over lower ones.
const (
	cellEmpty cellKind = iota
	cellCandy
	cellTrail
	cellOutline
	cellCovered
)

var cellGlyphs = [...]struct {
	s     string
	style lipgloss.Style
}{
	cellEmpty:   {" ", lipgloss.NewStyle()},
	cellCandy:   {" ", lipgloss.NewStyle().Background(lipgloss.Color("#C89A3A"))},
	cellTrail:   {"•", lipgloss.NewStyle().Background(lipgloss.Color("#C89A3A")).Foreground(lipgloss.Color("#F5F5F5"))},
	cellOutline: {"·", lipgloss.NewStyle().Background(lipgloss.Color("#C89A3A")).Foreground(lipgloss.Color("#5A3E08"))},
	cellCovered: {"●", lipgloss.NewStyle().Background(lipgloss.Color("#C89A3A")).Foreground(lipgloss.Color("#3A2404"))},
}

type grid struct {
	cols  int
	rows  int
	cells []cellKind
}

func newGrid(cols, rows int) *grid {
	return &grid{cols: cols, rows: rows, cells: make([]cellKind, cols*rows)}
}

func (g *grid) at(col, row int) cellKind {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return cellEmpty
	}
	return g.cells[row*g.cols+col]
}

func (g *grid) set(col, row int, kind cellKind) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	if i := row*g.cols + col; kind > g.cells[i] {
		g.cells[i] = kind
	}
}

// cellToPoint maps a canvas cell to the logical point at its center.
func cellToPoint(col, row, cols, rows int) model.Point {
	return model.Point{
		X: (float64(col) + 0.5) * model.CanvasSize / float64(cols),
		Y: (float64(row) + 0.5) * model.CanvasSize / float64(rows),
	}
}

// pointToCell maps a logical point to the cell containing it.
func pointToCell(p model.Point, cols, rows int) (col, row int, ok bool) {
	col = int(math.Floor(p.X / model.CanvasSize * float64(cols)))
	row = int(math.Floor(p.Y / model.CanvasSize * float64(rows)))
	ok = col >= 0 && row >= 0 && col < cols && row < rows
	return col, row, ok
}

func rasterize(path []model.Point, covered []bool, trail [][]model.Point, cols, rows int) *grid {
	g := newGrid(cols, rows)
	center := model.CanvasSize / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := cellToPoint(col, row, cols, rows)
			if math.Hypot(p.X-center, p.Y-center) <= snapshot.CandyRadius {
				g.set(col, row, cellCandy)
			}
		}
	}
	for _, stroke := range trail {
		for i, p := range stroke {
			if i == 0 {
				markPoint(g, p, cellTrail)
				continue
			}
			markSegment(g, stroke[i-1], p, cellTrail)
		}
	}
	for i, p := range path {
		kind := cellOutline
		if i < len(covered) && covered[i] {
			kind = cellCovered
		}
		markPoint(g, p, kind)
	}
	return g
}

func markPoint(g *grid, p model.Point, kind cellKind) {
	if col, row, ok := pointToCell(p, g.cols, g.rows); ok {
		g.set(col, row, kind)
	}
}

func markSegment(g *grid, a, b model.Point, kind cellKind) {
	a, b, ok := snapshot.ClipSegment(a, b, 0, model.CanvasSize)
	if !ok {
		return
	}
	step := math.Min(model.CanvasSize/float64(g.cols), model.CanvasSize/float64(g.rows)) / 2
	steps := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y) / step))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		markPoint(g, model.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, kind)
	}
}

// render draws the grid one line per row, styling runs of equal cells together.
func (g *grid) render() string {
	lines := make([]string, g.rows)
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		var line strings.Builder
		for col := 0; col < g.cols; {
			kind := g.at(col, row)
			b.Reset()
			for col < g.cols && g.at(col, row) == kind {
				b.WriteString(cellGlyphs[kind].s)
				col++
			}
			line.WriteString(cellGlyphs[kind].style.Render(b.String()))
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}
