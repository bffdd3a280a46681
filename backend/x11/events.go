//go:build !windows && !android && !darwin && !js

package x11

import (
	"image"
	"log/slog"

	"github.com/jezek/xgb/xproto"
	"github.com/srlehn/xgbutil/xprop"

	"github.com/srlehn/fbport/canvas"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/logx"
)

// drain handles all pending events and fullscreen requests. It runs on the
// render goroutine.
func (b *Backend) drain(comp *canvas.Compositor) error {
	var evs []any
	heldOver := b.held != nil
	if heldOver {
		evs = append(evs, *b.held)
		b.held = nil
	}
	closed := false
collect:
	for {
		select {
		case xe := <-b.events:
			if xe.err != nil {
				logx.IsErr(errors.New(xe.err), b.env.Logger, slog.LevelWarn)
			}
			if xe.ev != nil {
				evs = append(evs, xe.ev)
			}
		case req := <-b.fsReq:
			req.done <- b.applyFullscreen(req.on)
		case <-b.connDone:
			closed = true
			break collect
		default:
			break collect
		}
	}
	if closed {
		// events queued before the connection went away
		for len(b.events) > 0 {
			if xe := <-b.events; xe.ev != nil {
				evs = append(evs, xe.ev)
			}
		}
	}
	for i, ev := range evs {
		if rel, ok := ev.(xproto.KeyReleaseEvent); ok {
			if i+1 == len(evs) && !closed && !(heldOver && i == 0) {
				// the matching auto repeat press may arrive with the next batch,
				// a release held over from the last tick is not held again
				b.held = &rel
				continue
			}
			if i+1 < len(evs) && isAutoRepeat(rel, evs[i+1]) {
				continue
			}
		}
		if err := b.handle(comp, ev); err != nil {
			return err
		}
	}
	if closed {
		logx.Warn(`x11 server connection closed`, b.env.Logger)
		return errors.New(consts.ErrConnClosed)
	}
	return nil
}

func (b *Backend) handle(comp *canvas.Compositor, ev any) error {
	env := b.env
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		size := image.Pt(int(e.Width), int(e.Height))
		if size == b.winSize {
			return nil
		}
		b.mu.Lock()
		b.winSize = size
		b.geom.Center(size.X, size.Y)
		b.mu.Unlock()
		// width and height 0 clear to the window edges
		xproto.ClearArea(b.xu.Conn(), false, b.win.Id, 0, 0, 0, 0)
		comp.Invalidate(comp.Bounds())
		logx.Debug(`x11 window resized`, env.Logger, `size`, size, `offset`, b.geom.Offset)
	case xproto.ExposeEvent:
		r := image.Rect(int(e.X), int(e.Y), int(e.X)+int(e.Width), int(e.Y)+int(e.Height))
		comp.Invalidate(r.Sub(b.geom.Offset))
	case xproto.KeyPressEvent:
		b.keyPress(e)
	case xproto.KeyReleaseEvent:
		b.gate.Release(uint32(e.Detail))
	case xproto.ButtonPressEvent:
		button, action := mapButton(e.Detail, e.State)
		switch action {
		case buttonPress:
			x, y, ok := b.geom.DeviceToNative(int(e.EventX), int(e.EventY))
			if !ok {
				return nil
			}
			env.Mouse.PressAt(x, y, button)
			b.pressed = true
		case buttonPaste:
			b.requestSelection(b.atom.primary, e.Time)
		}
	case xproto.ButtonReleaseEvent:
		if _, action := mapButton(e.Detail, e.State); action == buttonPress && b.pressed {
			env.Mouse.Release()
			b.pressed = false
		}
	case xproto.MotionNotifyEvent:
		if x, y, ok := b.geom.DeviceToNative(int(e.EventX), int(e.EventY)); ok {
			env.Mouse.Move(x, y)
		} else {
			env.Mouse.Leave()
		}
	case xproto.LeaveNotifyEvent:
		env.Mouse.Leave()
	case xproto.SelectionNotifyEvent:
		b.paste(e)
	case xproto.ClientMessageEvent:
		if e.Type != b.atom.protocols || len(e.Data.Data32) == 0 ||
			xproto.Atom(e.Data.Data32[0]) != b.atom.deleteWindow {
			return nil
		}
		logx.Info(`x11 window closed`, env.Logger)
		if env.Closed != nil {
			env.Closed()
		}
		return errors.New(consts.ErrWindowClosed)
	}
	return nil
}

func (b *Backend) keyPress(e xproto.KeyPressEvent) {
	plain := b.keysym(e.Detail, 0)
	shifted := b.keysym(e.Detail, 1)
	k, ok := keyFor(plain, shifted, e.State)
	if !ok {
		return
	}
	if !b.gate.Press(uint32(e.Detail), serverTime(e.Time)) {
		return
	}
	if isPaste(k) {
		b.requestSelection(b.atom.clipboard, e.Time)
		return
	}
	b.env.Keys.Push(k)
}

// requestSelection asks the selection owner to store its text as UTF-8 in
// a property of our window, answered by a SelectionNotify event.
func (b *Backend) requestSelection(sel xproto.Atom, t xproto.Timestamp) {
	xproto.ConvertSelection(b.xu.Conn(), b.win.Id, sel, b.atom.utf8, b.atom.sel, t)
}

func (b *Backend) paste(e xproto.SelectionNotifyEvent) {
	if e.Property == xproto.AtomNone {
		logx.Debug(`selection empty or not convertible`, b.env.Logger)
		return
	}
	reply, err := xprop.GetProperty(b.xu, b.win.Id, selectionProp)
	if err != nil {
		logx.IsErr(errors.New(err), b.env.Logger, slog.LevelDebug)
		return
	}
	xproto.DeleteProperty(b.xu.Conn(), b.win.Id, b.atom.sel)
	if reply == nil || len(reply.Value) == 0 {
		return
	}
	b.env.Keys.InjectText(string(reply.Value))
}
