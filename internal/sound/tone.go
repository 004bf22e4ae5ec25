package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSaw WaveType = iota
	WaveSine
)

const (
	startGain = 0.05
	endFreq   = 10.0
)

// tone is a single blip: the pitch slides exponentially from freq down to
// endFreq while the gain falls linearly to silence.
type tone struct {
	freq     float64
	wave     WaveType
	rate     beep.SampleRate
	duration int
	position int
	phase    float64
}

// NewTone returns a finite streamer for one cue.
func NewTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		wave:     wave,
		rate:     rate,
		duration: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.duration {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.duration {
			return i, true
		}
		progress := float64(t.position) / float64(t.duration)

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		default:
			val = 2.0 * (t.phase - 0.5)
		}
		val *= startGain * (1 - progress)

		samples[i][0] = val
		samples[i][1] = val

		freq := t.freq * math.Pow(endFreq/t.freq, progress)
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
