package game

import "github.com/verte-zerg/dalgona/internal/model"

// Tracker records which target points have been touched during a level.
type Tracker struct {
	path    []model.Point
	covered []bool
	count   int
}

// Reset replaces the target path and clears coverage.
func (t *Tracker) Reset(path []model.Point) {
	t.path = path
	t.covered = make([]bool, len(path))
	t.count = 0
}

// TestAndMark marks every target point closer than precision to p and
// reports whether at least one was found.
func (t *Tracker) TestAndMark(p model.Point, precision float64) bool {
	limit := precision * precision
	hit := false
	for i, target := range t.path {
		dx := p.X - target.X
		dy := p.Y - target.Y
		if dx*dx+dy*dy >= limit {
			continue
		}
		hit = true
		if !t.covered[i] {
			t.covered[i] = true
			t.count++
		}
	}
	return hit
}

// CoverageRatio returns covered points over path length, 0 for an empty path.
func (t *Tracker) CoverageRatio() float64 {
	if len(t.path) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.path))
}

// Covered reports whether the point at index i has been touched.
func (t *Tracker) Covered(i int) bool {
	return i >= 0 && i < len(t.covered) && t.covered[i]
}

// CoveredCount returns the number of touched points.
func (t *Tracker) CoveredCount() int {
	return t.count
}

// Path returns the active target path. Callers must not modify it.
func (t *Tracker) Path() []model.Point {
	return t.path
}

// CoveredMask returns a copy of the per-point coverage flags.
func (t *Tracker) CoveredMask() []bool {
	return append([]bool(nil), t.covered...)
}
