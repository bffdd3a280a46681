package input

import "time"

// RepeatGate decides which repeated key events of a held key are delivered:
// the first after Delay, then one per Interval.
type RepeatGate struct {
	Delay    time.Duration
	Interval time.Duration

	code  uint32
	down  time.Time
	last  time.Time
	valid bool
}

func NewRepeatGate(delay, interval time.Duration) *RepeatGate {
	return &RepeatGate{Delay: delay, Interval: interval}
}

// Press reports whether a press of code at t is delivered.
// A press of the held key counts as auto repeat.
func (g *RepeatGate) Press(code uint32, t time.Time) bool {
	if !g.valid || g.code != code {
		g.code, g.down, g.last, g.valid = code, t, t, true
		return true
	}
	if t.Sub(g.down) < g.Delay || t.Sub(g.last) < g.Interval {
		return false
	}
	g.last = t
	return true
}

// Release ends the repeat sequence of code.
func (g *RepeatGate) Release(code uint32) {
	if g.valid && g.code == code {
		g.valid = false
	}
}

// Held reports whether code is the key currently held.
func (g *RepeatGate) Held(code uint32) bool { return g.valid && g.code == code }
