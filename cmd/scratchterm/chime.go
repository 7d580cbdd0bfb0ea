package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// revealNotes is the rising C major arpeggio played on reveal.
var revealNotes = []float64{523.25, 659.25, 783.99, 1046.5}

const noteLength = 90 * time.Millisecond

// bell is a sine tone with a fast attack and an exponential decay.
type bell struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBell(sr beep.SampleRate, freq float64) *bell {
	return &bell{sr: sr, freq: freq}
}

func (b *bell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(b.pos) / float64(b.sr)
		attack := math.Min(t/0.005, 1)
		v := 0.25 * attack * math.Exp(-t*12) * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bell) Err() error {
	return nil
}

// chime returns the reveal jingle as one finite streamer.
func chime(sr beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(revealNotes)+1)
	for i, f := range revealNotes {
		d := noteLength
		if i == len(revealNotes)-1 {
			d *= 4
		}
		notes = append(notes, beep.Take(sr.N(d), newBell(sr, f)))
	}
	return beep.Seq(notes...)
}

// sound plays effects when the speaker is available and is silent
// otherwise.
type sound struct {
	mu          sync.Mutex
	initialized bool
	mixer       *beep.Mixer
}

func newSound() *sound {
	return &sound{mixer: &beep.Mixer{}}
}

// init opens the speaker. Failure leaves the sound muted.
func (s *sound) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *sound) playChime() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(chime(sampleRate))
	speaker.Unlock()
}

func (s *sound) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
