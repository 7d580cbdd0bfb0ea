package scratchcard

import "time"

// FadeDuration is how long the cover takes to fade out after completion
// when Config.FadeOnComplete is set.
const FadeDuration = 300 * time.Millisecond

// Completion is delivered to the host once per surface.
type Completion struct {
	// Percentage is the coverage that crossed the threshold.
	Percentage float64

	// Surface is the revealed surface.
	Surface *Surface
}

// gate is the one-shot completion latch. completed never goes back to
// false; a new surface gets a new gate.
type gate struct {
	percentage  float64
	completed   bool
	completedAt time.Time
}

// record stores a fresh sample and reports whether it crossed finish for
// the first time. After completion it changes nothing.
func (g *gate) record(percentage, finish float64, now time.Time) bool {
	if g.completed {
		return false
	}
	g.percentage = percentage
	if percentage < finish {
		return false
	}
	g.completed = true
	g.completedAt = now
	return true
}

// opacity returns the cover opacity at now: 1 until completion, then a
// linear fade to 0 over FadeDuration when fade is set.
func (g *gate) opacity(fade bool, now time.Time) float64 {
	if !g.completed || !fade {
		return 1
	}
	elapsed := now.Sub(g.completedAt)
	switch {
	case elapsed <= 0:
		return 1
	case elapsed >= FadeDuration:
		return 0
	default:
		return 1 - float64(elapsed)/float64(FadeDuration)
	}
}
