// Package input turns pointer and keyboard events into the polled state the
// application reads: a press/release reconciling mouse and a key queue.
package input

import (
	"image"
	"sync"
	"time"
)

// Button ids as reported by Read.
const (
	ButtonNone   = 0
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// OffCanvas is the position reported while the pointer is outside the canvas.
var OffCanvas = image.Pt(-1, -1)

// Mouse reconciles press and release events from input goroutines with the
// Touched/Read polling of the application.
//
// Producers count pending downs and ups. Touched reports a press only while
// it is not yet consumed by Read, and never twice without a release in
// between, however many transitions happened between two polls.
type Mouse struct {
	mu       sync.Mutex
	pos      image.Point
	downs    int
	ups      int
	held     bool
	button   int
	lastSeen time.Time
	now      func() time.Time
}

func NewMouse() *Mouse {
	return &Mouse{pos: OffCanvas, now: time.Now}
}

// Press records a button going down at the current position.
func (m *Mouse) Press(button int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downs++
	m.button = button
	m.lastSeen = m.now()
}

// PressAt moves the pointer and records a press in one update.
func (m *Mouse) PressAt(x, y, button int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = image.Pt(x, y)
	m.downs++
	m.button = button
	m.lastSeen = m.now()
}

func (m *Mouse) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ups++
	m.lastSeen = m.now()
}

func (m *Mouse) Move(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = image.Pt(x, y)
	m.lastSeen = m.now()
}

// Leave marks the pointer as outside of the canvas.
func (m *Mouse) Leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = OffCanvas
}

// Touched reports whether a press is waiting to be read.
// It is idempotent while it reports a press.
func (m *Mouse) Touched() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.ups > m.downs:
		m.ups--
		m.held = false
		return false
	case m.held:
		// the last press was read, wait for its release
		if m.ups > 0 {
			m.ups--
			m.held = false
		}
		return false
	case m.ups > 0 && m.ups == m.downs:
		return true
	case m.ups > 0:
		m.ups--
		m.downs--
		return false
	default:
		return m.downs > 0
	}
}

// Read returns the position and button of the pending press and consumes it.
func (m *Mouse) Read() (x, y, button int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.downs > 0 {
		m.downs--
		m.held = true
	}
	return m.pos.X, m.pos.Y, m.button
}

// Get returns the current position without touching the press state.
func (m *Mouse) Get() (x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos.X, m.pos.Y
}

// Set moves the pointer programmatically.
func (m *Mouse) Set(x, y int) { m.Move(x, y) }

// LastActive is the time of the last pointer event.
func (m *Mouse) LastActive() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// Pending returns the raw counters.
func (m *Mouse) Pending() (downs, ups int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.downs, m.ups
}

// Direction of a cursor warp.
type Direction int

const (
	WarpUp Direction = iota
	WarpDown
	WarpLeft
	WarpRight
)

// Warp moves the pointer n pixels in dir, clamped to bounds.
// A pointer outside of the canvas starts from the center.
func (m *Mouse) Warp(dir Direction, n int, bounds image.Rectangle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pos
	if !p.In(bounds) {
		p = bounds.Min.Add(bounds.Size().Div(2))
	}
	switch dir {
	case WarpUp:
		p.Y -= n
	case WarpDown:
		p.Y += n
	case WarpLeft:
		p.X -= n
	case WarpRight:
		p.X += n
	}
	p.X = min(max(p.X, bounds.Min.X), bounds.Max.X-1)
	p.Y = min(max(p.Y, bounds.Min.Y), bounds.Max.Y-1)
	m.pos = p
	m.lastSeen = m.now()
}
