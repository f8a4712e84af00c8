package state

import "time"

// DefaultPassDuration is the wall time one full pass over the horizon takes
// at speed 1.
const DefaultPassDuration = 60 * time.Second

// PlaybackState manages replay of task arrivals.
type PlaybackState struct {
	CurrentTime float64 // Playback time in simulated seconds
	MaxTime     float64 // Problem horizon
	Rate        float64 // Simulated seconds per wall second at speed 1
	Speed       float64 // Speed multiplier
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a paused playback over [0, maxTime].
func NewPlaybackState(maxTime float64) *PlaybackState {
	return &PlaybackState{
		MaxTime:    maxTime,
		Rate:       maxTime / DefaultPassDuration.Seconds(),
		Speed:      1.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *PlaybackState) TogglePlay() {
	if p.Playing {
		p.Pause()
		return
	}
	p.Play()
}

// Play starts playback, rewinding first when at the end.
func (p *PlaybackState) Play() {
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = 0
	}
	p.Playing = true
	p.lastUpdate = time.Now()
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the start and pauses.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves playback forward by the wall time since the last update.
func (p *PlaybackState) Advance() {
	p.AdvanceTo(time.Now())
}

// AdvanceTo moves playback forward to wall time now.
func (p *PlaybackState) AdvanceTo(now time.Time) {
	if !p.Playing {
		return
	}

	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now
	if elapsed <= 0 {
		return
	}

	p.CurrentTime += elapsed * p.Rate * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime sets the playback time, clamped to the horizon.
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances by 1% of the horizon.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(p.CurrentTime + p.step())
}

// StepBack pauses and rewinds by 1% of the horizon.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(p.CurrentTime - p.step())
}

func (p *PlaybackState) step() float64 {
	step := p.MaxTime / 100
	if step < 1 {
		step = 1
	}
	return step
}

// SetSpeed sets the speed multiplier, clamped to [0.1, 10].
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	p.Speed = speed
}

// Progress returns current progress as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
