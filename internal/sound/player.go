// Package sound plays short synthesized cues for tracing events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

const (
	missFreq      = 150.0
	missDuration  = 50 * time.Millisecond
	hitBaseFreq   = 600.0
	hitDuration   = 20 * time.Millisecond
	countdownFreq = 200.0
	countdownDur  = 100 * time.Millisecond
)

// Player mixes cues onto the system speaker. Calls before Initialize or
// after Cleanup are ignored.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops playback and closes the speaker.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer = &beep.Mixer{}
	p.initialized = false
}

// Hit plays a short high blip whose pitch rises with covered points.
func (p *Player) Hit(covered int) {
	p.play(NewTone(HitFrequency(covered), hitDuration, WaveSaw, sampleRate))
}

// Miss plays a low buzz.
func (p *Player) Miss() {
	p.play(NewTone(missFreq, missDuration, WaveSaw, sampleRate))
}

// Countdown plays the final-seconds beep.
func (p *Player) Countdown() {
	p.play(NewTone(countdownFreq, countdownDur, WaveSine, sampleRate))
}

// HitFrequency is the starting pitch of a hit cue.
func HitFrequency(covered int) float64 {
	return hitBaseFreq + float64(covered)
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
