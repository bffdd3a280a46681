package input

import "github.com/srlehn/fbport/internal/linux"

// Runes queued for cursor keys, from the Unicode private use area.
const (
	CharUp rune = 0xf700 + iota
	CharDown
	CharLeft
	CharRight
)

const (
	CharBackspace rune = '\b'
	CharTab       rune = '\t'
	CharEnter     rune = '\n'
	CharEsc       rune = 0x1b
)

type keyPair struct{ plain, shifted rune }

// usKeys maps Linux key codes of a US layout.
var usKeys = map[uint16]keyPair{
	1: {CharEsc, CharEsc},
	2: {'1', '!'}, 3: {'2', '@'}, 4: {'3', '#'}, 5: {'4', '$'}, 6: {'5', '%'},
	7: {'6', '^'}, 8: {'7', '&'}, 9: {'8', '*'}, 10: {'9', '('}, 11: {'0', ')'},
	12: {'-', '_'}, 13: {'=', '+'},
	14: {CharBackspace, CharBackspace}, 15: {CharTab, CharTab},
	16: {'q', 'Q'}, 17: {'w', 'W'}, 18: {'e', 'E'}, 19: {'r', 'R'}, 20: {'t', 'T'},
	21: {'y', 'Y'}, 22: {'u', 'U'}, 23: {'i', 'I'}, 24: {'o', 'O'}, 25: {'p', 'P'},
	26: {'[', '{'}, 27: {']', '}'}, 28: {CharEnter, CharEnter},
	30: {'a', 'A'}, 31: {'s', 'S'}, 32: {'d', 'D'}, 33: {'f', 'F'}, 34: {'g', 'G'},
	35: {'h', 'H'}, 36: {'j', 'J'}, 37: {'k', 'K'}, 38: {'l', 'L'},
	39: {';', ':'}, 40: {'\'', '"'}, 41: {'`', '~'}, 43: {'\\', '|'},
	44: {'z', 'Z'}, 45: {'x', 'X'}, 46: {'c', 'C'}, 47: {'v', 'V'}, 48: {'b', 'B'},
	49: {'n', 'N'}, 50: {'m', 'M'},
	51: {',', '<'}, 52: {'.', '>'}, 53: {'/', '?'},
	57: {' ', ' '},
	96: {CharEnter, CharEnter}, // keypad enter
	103: {CharUp, CharUp}, 105: {CharLeft, CharLeft},
	106: {CharRight, CharRight}, 108: {CharDown, CharDown},
}

// Keyboard tracks modifier keys of a key code stream and translates the
// remaining key presses into queued keys.
type Keyboard struct {
	shiftL, shiftR bool
	ctrlL, ctrlR   bool
}

// Event handles one EV_KEY event. value is 0 for release, 1 for press and 2
// for auto repeat. ok is false if no key is to be queued.
func (kb *Keyboard) Event(code uint16, value int32) (k Key, ok bool) {
	down := value != linux.KeyReleased
	switch code {
	case linux.KeyLeftShift:
		kb.shiftL = down
		return Key{}, false
	case linux.KeyRightShift:
		kb.shiftR = down
		return Key{}, false
	case linux.KeyLeftCtrl:
		kb.ctrlL = down
		return Key{}, false
	case linux.KeyRightCtrl:
		kb.ctrlR = down
		return Key{}, false
	}
	if !down {
		return Key{}, false
	}
	kp, ok := usKeys[code]
	if !ok {
		return Key{}, false
	}
	shift := kb.shiftL || kb.shiftR
	k = Key{Char: kp.plain, Ctrl: kb.ctrlL || kb.ctrlR, Shift: shift}
	if shift {
		k.Char = kp.shifted
	}
	return k, true
}
