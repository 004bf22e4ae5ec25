package generator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/dalgona/internal/model"
)

func TestGenerateDeterministicAndNonEmpty(t *testing.T) {
	for _, kind := range model.AllShapes {
		first := Generate(kind)
		if len(first) == 0 {
			t.Fatalf("%v: expected points", kind)
		}
		if diff := cmp.Diff(first, Generate(kind)); diff != "" {
			t.Fatalf("%v: output differs between calls (-first +second):\n%s", kind, diff)
		}
	}
}

func TestGeneratePointCounts(t *testing.T) {
	want := map[model.ShapeKind]int{
		model.ShapeCircle:    180,
		model.ShapeTriangle:  63,
		model.ShapeSquare:    84,
		model.ShapeStar:      130,
		model.ShapeCloud:     180,
		model.ShapeBird:      95,
		model.ShapeGhost:     182,
		model.ShapeUmbrella:  108,
		model.ShapeHeart:     126,
		model.ShapeButterfly: 126,
	}
	for kind, n := range want {
		if got := len(Generate(kind)); got != n {
			t.Fatalf("%v: expected %d points, got %d", kind, n, got)
		}
	}
}

func TestCircleRadius(t *testing.T) {
	for i, p := range Generate(model.ShapeCircle) {
		r := math.Hypot(p.X-200, p.Y-200)
		if math.Abs(r-120) > 1e-9 {
			t.Fatalf("point %d off radius: %f", i, r)
		}
	}
}

func TestGenerateStaysNearCanvas(t *testing.T) {
	for _, kind := range model.AllShapes {
		for i, p := range Generate(kind) {
			if p.X < 0 || p.X > model.CanvasSize || p.Y < 0 || p.Y > model.CanvasSize {
				t.Fatalf("%v: point %d outside canvas: %+v", kind, i, p)
			}
		}
	}
}

func TestStarStartsAtTopVertex(t *testing.T) {
	pts := Generate(model.ShapeStar)
	if math.Abs(pts[0].X-200) > 1e-9 || math.Abs(pts[0].Y-80) > 1e-9 {
		t.Fatalf("expected first star vertex at (200,80), got %+v", pts[0])
	}
}

func TestGenerateUnknownShapePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown shape")
		}
	}()
	Generate(model.ShapeKind(99))
}
