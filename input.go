package fbport

import (
	"github.com/srlehn/fbport/input"
)

// Key is a queued key press.
type Key = input.Key

// Direction of WarpCursor.
type Direction = input.Direction

const (
	WarpUp    = input.WarpUp
	WarpDown  = input.WarpDown
	WarpLeft  = input.WarpLeft
	WarpRight = input.WarpRight
)

// toLogical keeps the off-canvas position as is.
func (d *Display) toLogical(nx, ny int) (x, y int) {
	s := d.session()
	if s == nil || (nx == input.OffCanvas.X && ny == input.OffCanvas.Y) {
		return nx, ny
	}
	return s.sc.ToLogical(nx, ny)
}

// Touched reports a press not yet consumed by TouchRead. Between two calls
// a quick press and release is reported once, a held button only once.
func (d *Display) Touched() bool { return d.mouse.Touched() }

// TouchRead consumes the pending press and returns its logical position.
func (d *Display) TouchRead() (x, y int) {
	x, y, _ = d.TouchReadButton()
	return x, y
}

// TouchReadButton is TouchRead returning the button as well.
func (d *Display) TouchReadButton() (x, y, button int) {
	nx, ny, button := d.mouse.Read()
	x, y = d.toLogical(nx, ny)
	return x, y, button
}

// GetMouse is the logical pointer position, -1, -1 outside of the canvas.
func (d *Display) GetMouse() (x, y int) { return d.toLogical(d.mouse.Get()) }

// GetMouseRaw is the native pointer position.
func (d *Display) GetMouseRaw() (nx, ny int) { return d.mouse.Get() }

// SetMouse moves the pointer to the logical position x, y.
func (d *Display) SetMouse(x, y int) {
	s := d.session()
	if s == nil {
		d.mouse.Set(x, y)
		return
	}
	d.mouse.Set(s.sc.ToNative(x, y))
}

// WarpCursor moves the pointer n logical pixels in dir, staying on the
// canvas.
func (d *Display) WarpCursor(dir Direction, n int) {
	s := d.session()
	if s == nil {
		return
	}
	d.mouse.Warp(dir, n*s.sc.Scale, s.sc.NativeBounds())
}

// GetChar pops the oldest queued key.
func (d *Display) GetChar() (Key, bool) { return d.keys.Pop() }

// PutChar queues k as if typed. A full queue drops its oldest key.
func (d *Display) PutChar(k Key) { d.keys.Push(k) }

// InjectText queues the characters of s.
func (d *Display) InjectText(s string) { d.keys.InjectText(s) }

// KeysPending is the number of queued keys.
func (d *Display) KeysPending() int { return d.keys.Len() }
