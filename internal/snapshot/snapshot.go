// Package snapshot rasterizes a board to PNG for feedback requests.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/verte-zerg/dalgona/internal/model"
)

var (
	backdrop     = color.RGBA{R: 0x27, G: 0x27, B: 0x2a, A: 0xff}
	candy        = color.RGBA{R: 0xe0, G: 0xb0, B: 0x2a, A: 0xff}
	outline      = color.RGBA{R: 0x8a, G: 0x62, B: 0x0c, A: 0xff}
	coveredColor = color.RGBA{R: 0x3a, G: 0x24, B: 0x04, A: 0xff}
	strokeColor  = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
)

// CandyRadius is the radius of the candy disc in logical units.
const CandyRadius = 180

const dotRadius = 2

// Render draws the candy disc, the target outline and the player's strokes.
func Render(path []model.Point, covered []bool, trail [][]model.Point) *image.RGBA {
	size := int(model.CanvasSize)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := model.CanvasSize / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := backdrop
			if math.Hypot(float64(x)-center, float64(y)-center) <= CandyRadius {
				c = candy
			}
			img.SetRGBA(x, y, c)
		}
	}
	for i, p := range path {
		c := outline
		if i < len(covered) && covered[i] {
			c = coveredColor
		}
		dot(img, p, dotRadius, c)
	}
	for _, stroke := range trail {
		for i := 1; i < len(stroke); i++ {
			line(img, stroke[i-1], stroke[i], strokeColor)
		}
		if len(stroke) == 1 {
			dot(img, stroke[0], 1, strokeColor)
		}
	}
	return img
}

// PNG renders the board and encodes it.
func PNG(path []model.Point, covered []bool, trail [][]model.Point) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(path, covered, trail)); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func dot(img *image.RGBA, p model.Point, r int, c color.RGBA) {
	cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			set(img, cx+dx, cy+dy, c)
		}
	}
}

func line(img *image.RGBA, a, b model.Point, c color.RGBA) {
	a, b, ok := ClipSegment(a, b, -1, model.CanvasSize+1)
	if !ok {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	if steps == 0 {
		set(img, int(math.Round(a.X)), int(math.Round(a.Y)), c)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		set(img, int(math.Round(a.X+(b.X-a.X)*f)), int(math.Round(a.Y+(b.Y-a.Y)*f)), c)
	}
}

func set(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	img.SetRGBA(x, y, c)
}

// ClipSegment clips ab to the square [lo, hi] on both axes. It reports false
// when the segment lies entirely outside.
func ClipSegment(a, b model.Point, lo, hi float64) (model.Point, model.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - lo},
		{dx, hi - a.X},
		{-dy, a.Y - lo},
		{dy, hi - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return model.Point{X: a.X + dx*t0, Y: a.Y + dy*t0},
		model.Point{X: a.X + dx*t1, Y: a.Y + dy*t1}, true
}
