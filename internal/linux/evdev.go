package linux

import (
	"encoding/binary"
	"time"
)

// <linux/input-event-codes.h>
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
	EvMax uint16 = 0x1f

	SynReport  uint16 = 0x00
	SynDropped uint16 = 0x03

	RelX uint16 = 0x00
	RelY uint16 = 0x01

	AbsX           uint16 = 0x00
	AbsY           uint16 = 0x01
	AbsMtPositionX uint16 = 0x35
	AbsMtPositionY uint16 = 0x36
	AbsMax         uint16 = 0x3f

	KeyEsc        uint16 = 1
	KeyBackspace  uint16 = 14
	KeyTab        uint16 = 15
	KeyA          uint16 = 30
	KeyEnter      uint16 = 28
	KeyLeftCtrl   uint16 = 29
	KeyLeftShift  uint16 = 42
	KeyRightShift uint16 = 54
	KeyRightCtrl  uint16 = 97
	KeyUp         uint16 = 103
	KeyLeft       uint16 = 105
	KeyRight      uint16 = 106
	KeyDown       uint16 = 108
	KeyMax        uint16 = 0x2ff

	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
	BtnTouch  uint16 = 0x14a
)

// key event values
const (
	KeyReleased int32 = 0
	KeyPressed  int32 = 1
	KeyRepeated int32 = 2
)

// InputEvent mirrors struct input_event.
type InputEvent struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

// AbsInfo mirrors struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// DecodeEvent decodes a native endian struct input_event. timeSize is the
// size of struct timeval on the platform (16 on 64 bit, 8 on 32 bit).
func DecodeEvent(b []byte, timeSize int) (InputEvent, bool) {
	if len(b) < timeSize+8 || (timeSize != 8 && timeSize != 16) {
		return InputEvent{}, false
	}
	var sec, usec int64
	if timeSize == 16 {
		sec = int64(binary.NativeEndian.Uint64(b[0:]))
		usec = int64(binary.NativeEndian.Uint64(b[8:]))
	} else {
		sec = int64(int32(binary.NativeEndian.Uint32(b[0:])))
		usec = int64(int32(binary.NativeEndian.Uint32(b[4:])))
	}
	return InputEvent{
		Time:  time.Unix(sec, usec*int64(time.Microsecond)),
		Type:  binary.NativeEndian.Uint16(b[timeSize:]),
		Code:  binary.NativeEndian.Uint16(b[timeSize+2:]),
		Value: int32(binary.NativeEndian.Uint32(b[timeSize+4:])),
	}, true
}

// EncodeEvent is the inverse of DecodeEvent.
func EncodeEvent(ev InputEvent, timeSize int) []byte {
	b := make([]byte, timeSize+8)
	usec := ev.Time.Nanosecond() / int(time.Microsecond)
	if timeSize == 16 {
		binary.NativeEndian.PutUint64(b[0:], uint64(ev.Time.Unix()))
		binary.NativeEndian.PutUint64(b[8:], uint64(usec))
	} else {
		binary.NativeEndian.PutUint32(b[0:], uint32(ev.Time.Unix()))
		binary.NativeEndian.PutUint32(b[4:], uint32(usec))
	}
	binary.NativeEndian.PutUint16(b[timeSize:], ev.Type)
	binary.NativeEndian.PutUint16(b[timeSize+2:], ev.Code)
	binary.NativeEndian.PutUint32(b[timeSize+4:], uint32(ev.Value))
	return b
}

// TestBit reports whether bit n is set in a capability bitmap returned by EVIOCGBIT.
func TestBit(bits []byte, n uint16) bool {
	i := int(n / 8)
	if i >= len(bits) {
		return false
	}
	return bits[i]&(1<<(n%8)) != 0
}
