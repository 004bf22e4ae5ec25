package game

import (
	"math"
	"testing"
)

func TestStressAccumulatesAndDecays(t *testing.T) {
	var s Stress
	for i := 0; i < 3; i++ {
		s.OnMiss(2.0)
	}
	if math.Abs(s.Level()-6.0) > 1e-9 {
		t.Fatalf("expected 6.0 after three misses, got %f", s.Level())
	}
	s.OnHit()
	if math.Abs(s.Level()-5.9) > 1e-9 {
		t.Fatalf("expected 5.9 after a hit, got %f", s.Level())
	}
}

func TestStressNeverNegative(t *testing.T) {
	var s Stress
	s.OnMiss(0.05)
	s.OnHit()
	s.OnHit()
	if s.Level() != 0 {
		t.Fatalf("expected stress floored at 0, got %f", s.Level())
	}
}

func TestStressNotClamped(t *testing.T) {
	var s Stress
	s.OnMiss(99)
	if s.AtCeiling() {
		t.Fatalf("99 is below the ceiling")
	}
	s.OnMiss(7)
	if !s.AtCeiling() || s.Level() != 106 {
		t.Fatalf("expected unclamped 106 at ceiling, got %f", s.Level())
	}
}
