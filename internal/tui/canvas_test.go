package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/dalgona/internal/model"
)

func TestCellPointMapping(t *testing.T) {
	p := cellToPoint(0, 0, 80, 40)
	if p.X != 2.5 || p.Y != 5 {
		t.Fatalf("unexpected top-left center %+v", p)
	}
	p = cellToPoint(79, 39, 80, 40)
	if p.X != 397.5 || p.Y != 395 {
		t.Fatalf("unexpected bottom-right center %+v", p)
	}
	for _, tc := range []struct{ col, row int }{{0, 0}, {13, 7}, {79, 39}} {
		col, row, ok := pointToCell(cellToPoint(tc.col, tc.row, 80, 40), 80, 40)
		if !ok || col != tc.col || row != tc.row {
			t.Fatalf("round trip %v -> %d,%d,%v", tc, col, row, ok)
		}
	}
	if _, _, ok := pointToCell(model.Point{X: -1, Y: 10}, 80, 40); ok {
		t.Fatalf("expected negative x outside")
	}
	if _, _, ok := pointToCell(model.Point{X: 10, Y: 400}, 80, 40); ok {
		t.Fatalf("expected y=400 outside")
	}
}

func TestRasterizeLayers(t *testing.T) {
	path := []model.Point{{X: 200, Y: 200}, {X: 300, Y: 200}}
	covered := []bool{true, false}
	trail := [][]model.Point{{{X: 100, Y: 200}, {X: 300, Y: 200}}}
	g := rasterize(path, covered, trail, 40, 40)

	if got := g.at(0, 0); got != cellEmpty {
		t.Fatalf("corner should be outside the candy, got %d", got)
	}
	if got := g.at(20, 20); got != cellCovered {
		t.Fatalf("expected covered cell, got %d", got)
	}
	if got := g.at(30, 20); got != cellOutline {
		t.Fatalf("outline should draw over trail, got %d", got)
	}
	if got := g.at(15, 20); got != cellTrail {
		t.Fatalf("expected trail between samples, got %d", got)
	}
	if got := g.at(15, 10); got != cellCandy {
		t.Fatalf("expected plain candy, got %d", got)
	}

	out := g.render()
	lines := strings.Split(out, "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[20], "●") || !strings.Contains(lines[20], "·") || !strings.Contains(lines[20], "•") {
		t.Fatalf("row 20 missing glyphs: %q", lines[20])
	}
}
