package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 128)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
		if len(out) > int(sampleRate) {
			t.Fatalf("tone did not end")
		}
	}
}

func TestToneLength(t *testing.T) {
	samples := drain(t, NewTone(150, 50*time.Millisecond, WaveSaw, sampleRate))
	if want := sampleRate.N(50 * time.Millisecond); len(samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(samples))
	}
}

func TestToneGainDecays(t *testing.T) {
	samples := drain(t, NewTone(200, 100*time.Millisecond, WaveSine, sampleRate))
	peak := func(from, to int) float64 {
		var m float64
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	n := len(samples)
	head := peak(0, n/10)
	tail := peak(n-n/10, n)
	if head > startGain+1e-9 {
		t.Fatalf("gain above start level: %f", head)
	}
	if tail >= head/5 {
		t.Fatalf("expected decay, head=%f tail=%f", head, tail)
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("channel mismatch at %d", i)
		}
	}
}

func TestHitFrequency(t *testing.T) {
	if got := HitFrequency(0); got != 600 {
		t.Fatalf("expected 600, got %f", got)
	}
	if got := HitFrequency(42); got != 642 {
		t.Fatalf("expected 642, got %f", got)
	}
}

func TestPlayerIgnoresCuesBeforeInitialize(t *testing.T) {
	p := NewPlayer()
	p.Hit(3)
	p.Miss()
	p.Countdown()
	p.Cleanup()
	if p.mixer.Len() != 0 {
		t.Fatalf("expected no queued cues, got %d", p.mixer.Len())
	}
}
