package x11

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/input"
)

func TestMapButton(t *testing.T) {
	tests := []struct {
		name   string
		detail xproto.Button
		state  uint16
		button int
		action int
	}{
		{`left`, xproto.ButtonIndex1, 0, input.ButtonLeft, buttonPress},
		{`ctrl left is right`, xproto.ButtonIndex1, xproto.ModMaskControl, input.ButtonRight, buttonPress},
		{`alt left is middle`, xproto.ButtonIndex1, xproto.ModMask1, input.ButtonMiddle, buttonPress},
		{`shift left`, xproto.ButtonIndex1, xproto.ModMaskShift, input.ButtonLeft, buttonPress},
		{`middle pastes`, xproto.ButtonIndex2, 0, input.ButtonNone, buttonPaste},
		{`right`, xproto.ButtonIndex3, 0, input.ButtonRight, buttonPress},
		{`wheel up`, xproto.ButtonIndex4, 0, input.ButtonNone, buttonIgnore},
		{`wheel down`, xproto.ButtonIndex5, 0, input.ButtonNone, buttonIgnore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			button, action := mapButton(tt.detail, tt.state)
			assert.Equal(t, tt.button, button)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name           string
		plain, shifted xproto.Keysym
		state          uint16
		want           input.Key
		ok             bool
	}{
		{`letter`, 'a', 'A', 0, input.Key{Char: 'a'}, true},
		{`shifted letter`, 'a', 'A', xproto.ModMaskShift, input.Key{Char: 'A', Shift: true}, true},
		{`caps lock letter`, 'a', 'A', xproto.ModMaskLock, input.Key{Char: 'A'}, true},
		{`caps lock digit`, '1', '!', xproto.ModMaskLock, input.Key{Char: '1'}, true},
		{`shifted digit`, '1', '!', xproto.ModMaskShift, input.Key{Char: '!', Shift: true}, true},
		{`ctrl`, 'c', 'C', xproto.ModMaskControl, input.Key{Char: 'c', Ctrl: true}, true},
		{`return`, xkReturn, 0, 0, input.Key{Char: input.CharEnter}, true},
		{`arrow`, xkLeft, 0, 0, input.Key{Char: input.CharLeft}, true},
		{`latin-1`, 0xe9, 0xc9, 0, input.Key{Char: 'é'}, true},
		{`unicode keysym`, xkUnicode + 0x20ac, 0, 0, input.Key{Char: '€'}, true},
		{`modifier keysym`, 0xffe1, 0, 0, input.Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := keyFor(tt.plain, tt.shifted, tt.state)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestIsPaste(t *testing.T) {
	assert.True(t, isPaste(input.Key{Char: 'v', Ctrl: true}))
	assert.True(t, isPaste(input.Key{Char: 'V', Ctrl: true, Shift: true}))
	assert.False(t, isPaste(input.Key{Char: 'v'}))
}

func TestIsAutoRepeat(t *testing.T) {
	rel := xproto.KeyReleaseEvent{Detail: 38, Time: 1000}
	assert.True(t, isAutoRepeat(rel, xproto.KeyPressEvent{Detail: 38, Time: 1000}))
	assert.False(t, isAutoRepeat(rel, xproto.KeyPressEvent{Detail: 38, Time: 1030}))
	assert.False(t, isAutoRepeat(rel, xproto.KeyPressEvent{Detail: 39, Time: 1000}))
	assert.False(t, isAutoRepeat(rel, xproto.MotionNotifyEvent{Time: 1000}))
}

func TestRepeatTiming(t *testing.T) {
	g := input.NewRepeatGate(repeatDelay, repeatInterval)
	t0 := serverTime(5000)
	assert.True(t, g.Press(38, t0))
	assert.False(t, g.Press(38, serverTime(5000+100)))
	assert.True(t, g.Press(38, serverTime(xproto.Timestamp(5000+repeatDelay.Milliseconds()))))
	g.Release(38)
	assert.True(t, g.Press(38, serverTime(5600)))
}
