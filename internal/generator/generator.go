// Package generator builds target outlines for each shape kind.
package generator

import (
	"fmt"
	"math"

	"github.com/verte-zerg/dalgona/internal/model"
)

const (
	centerX = model.CanvasSize / 2
	centerY = model.CanvasSize / 2
	size    = 120.0

	edgeSteps = 20
	starSteps = 12
	paramStep = 0.05
)

// Generate returns the ordered outline for a shape. The result is freshly
// allocated on every call and identical across calls.
func Generate(kind model.ShapeKind) []model.Point {
	switch kind {
	case model.ShapeCircle:
		return circle()
	case model.ShapeTriangle:
		return triangle()
	case model.ShapeSquare:
		return square()
	case model.ShapeStar:
		return star()
	case model.ShapeHeart:
		return heart()
	case model.ShapeCloud:
		return cloud()
	case model.ShapeBird:
		return bird()
	case model.ShapeButterfly:
		return butterfly()
	case model.ShapeGhost:
		return ghost()
	case model.ShapeUmbrella:
		return umbrella()
	default:
		panic(fmt.Sprintf("generator: unknown shape %v", kind))
	}
}

// path accumulates outline points.
type path []model.Point

func (p *path) add(x, y float64) {
	*p = append(*p, model.Point{X: x, Y: y})
}

// interpolate appends steps+1 evenly spaced points from a to b, both ends included.
func (p *path) interpolate(a, b model.Point, steps int) {
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		p.add(a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f)
	}
}

// arc appends points on a circle of radius r, from fromDeg up to toDeg.
func (p *path) arc(fromDeg, toDeg, stepDeg int, inclusive bool, r float64) {
	for deg := fromDeg; deg < toDeg || (inclusive && deg == toDeg); deg += stepDeg {
		rad := radians(float64(deg))
		p.add(centerX+math.Cos(rad)*r, centerY+math.Sin(rad)*r)
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func pt(x, y float64) model.Point {
	return model.Point{X: x, Y: y}
}

func circle() []model.Point {
	var p path
	p.arc(0, 360, 2, false, size)
	return p
}

func cloud() []model.Point {
	var p path
	for deg := 0; deg < 360; deg += 2 {
		rad := radians(float64(deg))
		r := size + 15*math.Sin(float64(deg)*0.1)
		p.add(centerX+math.Cos(rad)*r, centerY+math.Sin(rad)*r)
	}
	return p
}

func triangle() []model.Point {
	v1 := pt(centerX, centerY-size)
	v2 := pt(centerX-size, centerY+size)
	v3 := pt(centerX+size, centerY+size)
	var p path
	p.interpolate(v1, v2, edgeSteps)
	p.interpolate(v2, v3, edgeSteps)
	p.interpolate(v3, v1, edgeSteps)
	return p
}

func square() []model.Point {
	s1 := pt(centerX-size, centerY-size)
	s2 := pt(centerX+size, centerY-size)
	s3 := pt(centerX+size, centerY+size)
	s4 := pt(centerX-size, centerY+size)
	var p path
	p.interpolate(s1, s2, edgeSteps)
	p.interpolate(s2, s3, edgeSteps)
	p.interpolate(s3, s4, edgeSteps)
	p.interpolate(s4, s1, edgeSteps)
	return p
}

// star alternates outer and inner vertices every 36 degrees, starting at the top.
func star() []model.Point {
	const vertices = 10
	corners := make([]model.Point, 0, vertices)
	for i := 0; i < vertices; i++ {
		rad := radians(float64(i * 36))
		r := size
		if i%2 == 1 {
			r = size / 2.5
		}
		corners = append(corners, pt(centerX+math.Sin(rad)*r, centerY-math.Cos(rad)*r))
	}
	var p path
	for i := 0; i < vertices; i++ {
		p.interpolate(corners[i], corners[(i+1)%vertices], starSteps)
	}
	return p
}

func heart() []model.Point {
	var p path
	for t := 0.0; t < 2*math.Pi; t += paramStep {
		x := 16 * math.Pow(math.Sin(t), 3)
		y := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		p.add(centerX+x*8, centerY+y*8)
	}
	return p
}

// bird is an open silhouette: beak, top, back, bottom, breast.
func bird() []model.Point {
	tail := pt(centerX-size, centerY)
	beak := pt(centerX-size+40, centerY-20)
	top := pt(centerX, centerY-size)
	back := pt(centerX+size, centerY)
	bottom := pt(centerX, centerY+size)
	var p path
	p.interpolate(tail, beak, 10)
	p.interpolate(beak, top, 20)
	p.interpolate(top, back, 20)
	p.interpolate(back, bottom, 20)
	p.interpolate(bottom, tail, 20)
	return p
}

func butterfly() []model.Point {
	var p path
	for t := -math.Pi; t < math.Pi; t += paramStep {
		r := math.Exp(math.Cos(t)) - 2*math.Cos(4*t) + math.Pow(math.Sin(t/12), 5)
		p.add(centerX+math.Sin(t)*r*40, centerY-math.Cos(t)*r*40)
	}
	return p
}

func ghost() []model.Point {
	var p path
	p.arc(180, 360, 2, true, size)
	p.interpolate(pt(centerX-size, centerY), pt(centerX-size, centerY+size), edgeSteps)
	p.interpolate(pt(centerX+size, centerY), pt(centerX+size, centerY+size), edgeSteps)
	for x := centerX - size; x <= centerX+size; x += 5 {
		p.add(x, centerY+size+math.Sin(x*0.1)*15)
	}
	return p
}

func umbrella() []model.Point {
	var p path
	p.arc(180, 360, 5, true, size)

	const panels = 4
	panelWidth := size * 2 / panels
	for i := 0; i < panels; i++ {
		startX := centerX + size - float64(i)*panelWidth
		endX := centerX + size - float64(i+1)*panelWidth
		for j := 0; j <= 10; j++ {
			f := float64(j) / 10
			p.add(startX+(endX-startX)*f, centerY+math.Sin(f*math.Pi)*15)
		}
	}

	foot := pt(centerX, centerY+size+20)
	p.interpolate(pt(centerX, centerY), foot, 15)
	p.interpolate(foot, pt(centerX-30, centerY+size+20), 10)
	return p
}
