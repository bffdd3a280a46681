package x11

import (
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/srlehn/fbport/input"
)

const (
	repeatDelay    = 400 * time.Millisecond
	repeatInterval = 80 * time.Millisecond
)

// keysyms without a latin-1 or unicode value
const (
	xkBackSpace xproto.Keysym = 0xff08
	xkTab       xproto.Keysym = 0xff09
	xkReturn    xproto.Keysym = 0xff0d
	xkEscape    xproto.Keysym = 0xff1b
	xkLeft      xproto.Keysym = 0xff51
	xkUp        xproto.Keysym = 0xff52
	xkRight     xproto.Keysym = 0xff53
	xkDown      xproto.Keysym = 0xff54
	xkKPEnter   xproto.Keysym = 0xff8d
	xkDelete    xproto.Keysym = 0xffff
	xkUnicode   xproto.Keysym = 0x01000000
)

var specialKeysyms = map[xproto.Keysym]rune{
	xkBackSpace: input.CharBackspace,
	xkTab:       input.CharTab,
	xkReturn:    input.CharEnter,
	xkKPEnter:   input.CharEnter,
	xkEscape:    input.CharEsc,
	xkDelete:    0x7f,
	xkLeft:      input.CharLeft,
	xkUp:        input.CharUp,
	xkRight:     input.CharRight,
	xkDown:      input.CharDown,
}

// keysymRune maps a keysym to the rune it types.
func keysymRune(sym xproto.Keysym) (rune, bool) {
	if r, ok := specialKeysyms[sym]; ok {
		return r, true
	}
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return rune(sym), true
	case sym > xkUnicode && sym <= xkUnicode+0x10ffff:
		return rune(sym - xkUnicode), true
	}
	return 0, false
}

// keyFor builds the queued key from the keysyms of both keycode columns
// and the modifier state of the event.
func keyFor(plain, shifted xproto.Keysym, state uint16) (input.Key, bool) {
	shift := state&xproto.ModMaskShift != 0
	lock := state&xproto.ModMaskLock != 0
	sym := plain
	if shifted != 0 && shift != (lock && isLetter(plain)) {
		sym = shifted
	}
	r, ok := keysymRune(sym)
	if !ok {
		return input.Key{}, false
	}
	return input.Key{Char: r, Ctrl: state&xproto.ModMaskControl != 0, Shift: shift}, true
}

func isLetter(sym xproto.Keysym) bool { return sym >= 'a' && sym <= 'z' }

// isPaste reports whether k asks for the clipboard contents.
func isPaste(k input.Key) bool { return k.Ctrl && (k.Char == 'v' || k.Char == 'V') }

// isAutoRepeat reports whether a release directly followed by a press of the
// same key at the same server time was generated by the X auto repeat.
func isAutoRepeat(rel xproto.KeyReleaseEvent, ev any) bool {
	press, ok := ev.(xproto.KeyPressEvent)
	return ok && press.Detail == rel.Detail && press.Time == rel.Time
}

// button actions
const (
	buttonIgnore = iota
	buttonPress
	buttonPaste
)

// mapButton translates an X button with its modifier state for single
// button pointers: Ctrl+Button1 is the right and Alt+Button1 the middle
// button. Button2 pastes the primary selection, wheel buttons are ignored.
func mapButton(detail xproto.Button, state uint16) (button, action int) {
	switch detail {
	case xproto.ButtonIndex1:
		switch {
		case state&xproto.ModMaskControl != 0:
			return input.ButtonRight, buttonPress
		case state&xproto.ModMask1 != 0:
			return input.ButtonMiddle, buttonPress
		}
		return input.ButtonLeft, buttonPress
	case xproto.ButtonIndex2:
		return input.ButtonNone, buttonPaste
	case xproto.ButtonIndex3:
		return input.ButtonRight, buttonPress
	}
	return input.ButtonNone, buttonIgnore
}

func serverTime(t xproto.Timestamp) time.Time { return time.UnixMilli(int64(t)) }
