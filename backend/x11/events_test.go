//go:build !windows && !android && !darwin && !js

package x11

import (
	"image"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/fbport/backend"
	"github.com/srlehn/fbport/input"
	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/scale"
)

const (
	codeA xproto.Keycode = 38
	codeB xproto.Keycode = 56
)

// newEventBackend returns a backend that handles events without a server
// connection.
func newEventBackend(t *testing.T) *Backend {
	t.Helper()
	sc, err := scale.ForScale(1)
	require.NoError(t, err)
	syms := map[xproto.Keycode][2]xproto.Keysym{
		codeA: {'a', 'A'},
		codeB: {'b', 'B'},
	}
	return &Backend{
		env: &backend.Env{
			Mouse: input.NewMouse(),
			Keys:  input.NewKeyQueue(16),
		},
		geom:     *sc,
		winSize:  sc.Native,
		gate:     input.NewRepeatGate(repeatDelay, repeatInterval),
		events:   make(chan xEvent, 16),
		connDone: make(chan struct{}),
		fsReq:    make(chan fullscreenRequest),
		keysym: func(code xproto.Keycode, column byte) xproto.Keysym {
			return syms[code][column]
		},
	}
}

func (b *Backend) queue(evs ...xgb.Event) {
	for _, ev := range evs {
		b.events <- xEvent{ev: ev}
	}
}

func drainKeys(q *input.KeyQueue) []rune {
	var got []rune
	for {
		k, ok := q.Pop()
		if !ok {
			return got
		}
		got = append(got, k.Char)
	}
}

func TestDrainAutoRepeat(t *testing.T) {
	b := newEventBackend(t)
	b.queue(
		xproto.KeyPressEvent{Detail: codeA, Time: 1000},
		xproto.KeyReleaseEvent{Detail: codeA, Time: 1100},
		xproto.KeyPressEvent{Detail: codeA, Time: 1100},
		xproto.KeyReleaseEvent{Detail: codeA, Time: 1450},
		xproto.KeyPressEvent{Detail: codeA, Time: 1450},
		xproto.KeyPressEvent{Detail: codeB, Time: 1500},
	)
	require.NoError(t, b.drain(nil))
	// the repeat before the delay is swallowed, the one after it is delivered
	assert.Equal(t, []rune{'a', 'a', 'b'}, drainKeys(b.env.Keys))
	assert.Nil(t, b.held)
	assert.True(t, b.gate.Held(uint32(codeB)))
}

func TestDrainHoldsTrailingRelease(t *testing.T) {
	t.Run(`auto repeat across batches`, func(t *testing.T) {
		b := newEventBackend(t)
		b.queue(
			xproto.KeyPressEvent{Detail: codeA, Time: 1000},
			xproto.KeyReleaseEvent{Detail: codeA, Time: 1100},
		)
		require.NoError(t, b.drain(nil))
		require.NotNil(t, b.held)
		assert.True(t, b.gate.Held(uint32(codeA)), `release held back for one tick`)
		assert.Equal(t, []rune{'a'}, drainKeys(b.env.Keys))

		b.queue(xproto.KeyPressEvent{Detail: codeA, Time: 1100})
		require.NoError(t, b.drain(nil))
		assert.Nil(t, b.held)
		assert.Empty(t, drainKeys(b.env.Keys), `repeat within the delay`)
		assert.True(t, b.gate.Held(uint32(codeA)))
	})
	t.Run(`real release`, func(t *testing.T) {
		b := newEventBackend(t)
		b.queue(
			xproto.KeyPressEvent{Detail: codeA, Time: 1000},
			xproto.KeyReleaseEvent{Detail: codeA, Time: 1100},
		)
		require.NoError(t, b.drain(nil))
		require.NotNil(t, b.held)

		require.NoError(t, b.drain(nil))
		assert.Nil(t, b.held)
		assert.False(t, b.gate.Held(uint32(codeA)))

		b.queue(xproto.KeyPressEvent{Detail: codeA, Time: 1150})
		require.NoError(t, b.drain(nil))
		assert.Equal(t, []rune{'a', 'a'}, drainKeys(b.env.Keys))
	})
	t.Run(`release then press later`, func(t *testing.T) {
		b := newEventBackend(t)
		b.queue(
			xproto.KeyPressEvent{Detail: codeA, Time: 1000},
			xproto.KeyReleaseEvent{Detail: codeA, Time: 1100},
		)
		require.NoError(t, b.drain(nil))
		b.queue(xproto.KeyPressEvent{Detail: codeA, Time: 1130})
		require.NoError(t, b.drain(nil))
		assert.Equal(t, []rune{'a', 'a'}, drainKeys(b.env.Keys))
	})
}

func TestDrainPointer(t *testing.T) {
	b := newEventBackend(t)
	m := b.env.Mouse
	b.queue(
		xproto.MotionNotifyEvent{EventX: 10, EventY: 20},
		xproto.ButtonPressEvent{Detail: xproto.ButtonIndex1, EventX: 12, EventY: 22},
	)
	require.NoError(t, b.drain(nil))
	x, y := m.Get()
	assert.Equal(t, [2]int{12, 22}, [2]int{x, y})
	require.True(t, m.Touched())
	x, y, button := m.Read()
	assert.Equal(t, [3]int{12, 22, input.ButtonLeft}, [3]int{x, y, button})

	b.queue(
		xproto.ButtonReleaseEvent{Detail: xproto.ButtonIndex1, EventX: 12, EventY: 22},
		xproto.MotionNotifyEvent{EventX: -1, EventY: 5},
	)
	require.NoError(t, b.drain(nil))
	assert.False(t, m.Touched())
	assert.False(t, b.pressed)
	x, y = m.Get()
	assert.Equal(t, input.OffCanvas, image.Pt(x, y))
}

func TestDrainConnClosed(t *testing.T) {
	b := newEventBackend(t)
	b.queue(
		xproto.KeyPressEvent{Detail: codeB, Time: 1000},
		xproto.MotionNotifyEvent{EventX: 30, EventY: 40},
		xproto.KeyReleaseEvent{Detail: codeB, Time: 1050},
	)
	close(b.connDone)
	err := b.drain(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, consts.ErrConnClosed))

	assert.Equal(t, []rune{'b'}, drainKeys(b.env.Keys))
	x, y := b.env.Mouse.Get()
	assert.Equal(t, [2]int{30, 40}, [2]int{x, y})
	assert.Nil(t, b.held, `no next tick after the connection closed`)
	assert.False(t, b.gate.Held(uint32(codeB)))
	assert.Empty(t, b.events)
}
