package game

const (
	// StressCeiling ends the level once reached.
	StressCeiling = 100.0
	// HitDecay is subtracted from stress on every hit.
	HitDecay = 0.1
)

// Stress accumulates on misses and decays slightly on hits. It is not
// clamped above; the session treats StressCeiling as the failure signal.
type Stress struct {
	level float64
}

// OnMiss adds gain.
func (s *Stress) OnMiss(gain float64) {
	s.level += gain
}

// OnHit subtracts HitDecay, never going below zero.
func (s *Stress) OnHit() {
	s.level -= HitDecay
	if s.level < 0 {
		s.level = 0
	}
}

// Level returns the current stress.
func (s *Stress) Level() float64 {
	return s.level
}

// AtCeiling reports whether the failure threshold has been reached.
func (s *Stress) AtCeiling() bool {
	return s.level >= StressCeiling
}

// Reset clears accumulated stress.
func (s *Stress) Reset() {
	s.level = 0
}
