package input

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/srlehn/fbport/internal/consts"
	"github.com/srlehn/fbport/internal/errors"
	"github.com/srlehn/fbport/internal/linux"
	"github.com/srlehn/fbport/internal/logx"
)

// Class is a bit set of device capabilities relevant to us.
type Class uint8

const (
	ClassPointer Class = 1 << iota
	ClassKeyboard
)

func (c Class) String() string {
	var s []string
	if c&ClassPointer != 0 {
		s = append(s, `pointer`)
	}
	if c&ClassKeyboard != 0 {
		s = append(s, `keyboard`)
	}
	if len(s) == 0 {
		return `none`
	}
	return strings.Join(s, `|`)
}

// Classify derives the device class from EVIOCGBIT bitmaps.
// Pointers report relative X/Y or absolute X/Y, keyboards have a key A.
func Classify(evBits, keyBits, relBits, absBits []byte) Class {
	var c Class
	if linux.TestBit(evBits, linux.EvRel) && linux.TestBit(relBits, linux.RelX) && linux.TestBit(relBits, linux.RelY) {
		c |= ClassPointer
	}
	if linux.TestBit(evBits, linux.EvAbs) && linux.TestBit(absBits, linux.AbsX) && linux.TestBit(absBits, linux.AbsY) {
		c |= ClassPointer
	}
	if linux.TestBit(evBits, linux.EvKey) && linux.TestBit(keyBits, linux.KeyA) {
		c |= ClassKeyboard
	}
	return c
}

// Device is an opened event device.
type Device struct {
	*os.File
	Path  string
	Name  string
	Class Class
	// set for absolute pointers
	AbsX, AbsY *linux.AbsInfo
}

// Discoverer finds event devices in an input directory.
type Discoverer struct {
	Dir    string
	Logger logx.LoggerProvider
	// OpenDevice defaults to Open.
	OpenDevice func(path string) (*Device, error)
}

// Check fails if the input directory can not be read.
func (d *Discoverer) Check() error {
	if _, err := os.ReadDir(d.dir()); err != nil {
		return errors.New(err)
	}
	return nil
}

func (d *Discoverer) dir() string {
	if d == nil || len(d.Dir) == 0 {
		return consts.DefaultInputDir
	}
	return d.Dir
}

// Devices lists the event device paths in name order.
func (d *Discoverer) Devices() ([]string, error) {
	entries, err := os.ReadDir(d.dir())
	if err != nil {
		return nil, errors.New(err)
	}
	var paths []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), `event`) {
			paths = append(paths, filepath.Join(d.dir(), e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Find opens the first device of class want.
func (d *Discoverer) Find(want Class) (*Device, error) {
	paths, err := d.Devices()
	if err != nil {
		return nil, err
	}
	open := d.OpenDevice
	if open == nil {
		open = Open
	}
	for _, p := range paths {
		dev, err := open(p)
		if err != nil {
			logx.Debug(`skipping input device`, d.Logger, `path`, p, `error`, err)
			continue
		}
		if dev.Class&want != 0 {
			logx.Info(`using input device`, d.Logger, `path`, p, `name`, dev.Name, `class`, dev.Class)
			return dev, nil
		}
		_ = dev.Close()
	}
	return nil, errors.WrapPrefix(`no `+want.String()+` device`, d.dir(), 0)
}

// Open opens and probes a single event device.
func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err)
	}
	dev := &Device{File: f, Path: path}
	rc, err := f.SyscallConn()
	if err != nil {
		_ = f.Close()
		return nil, errors.New(err)
	}
	var errProbe error
	// Control keeps the descriptor non blocking, unlike File.Fd
	errCtl := rc.Control(func(fd uintptr) { errProbe = dev.probe(fd) })
	if err := errors.Join(errCtl, errProbe); err != nil {
		_ = f.Close()
		return nil, err
	}
	return dev, nil
}

func (dev *Device) probe(fd uintptr) error {
	evBits, err := linux.EventBits(fd, 0, int(linux.EvMax))
	if err != nil {
		return err
	}
	keyBits, _ := linux.EventBits(fd, linux.EvKey, int(linux.KeyMax))
	relBits, _ := linux.EventBits(fd, linux.EvRel, 0x0f)
	absBits, _ := linux.EventBits(fd, linux.EvAbs, int(linux.AbsMax))
	dev.Class = Classify(evBits, keyBits, relBits, absBits)
	dev.Name, _ = linux.DeviceName(fd)
	if linux.TestBit(evBits, linux.EvAbs) && linux.TestBit(absBits, linux.AbsX) {
		if ax, err := linux.GetAbsInfo(fd, linux.AbsX); err == nil {
			dev.AbsX = &ax
		}
		if ay, err := linux.GetAbsInfo(fd, linux.AbsY); err == nil {
			dev.AbsY = &ay
		}
	}
	return nil
}

// ReadEvents decodes input_event records from r until it fails.
func ReadEvents(r io.Reader, fn func(linux.InputEvent)) error {
	buf := make([]byte, 64*linux.EventSize)
	timeSize := linux.EventSize - 8
	var have int
	for {
		n, err := r.Read(buf[have:])
		have += n
		whole := have - have%linux.EventSize
		for off := 0; off < whole; off += linux.EventSize {
			if ev, ok := linux.DecodeEvent(buf[off:off+linux.EventSize], timeSize); ok {
				fn(ev)
			}
		}
		have = copy(buf, buf[whole:have])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New(io.ErrUnexpectedEOF)
			}
			return errors.New(err)
		}
	}
}

// DefaultRediscover is the delay between device discovery attempts.
const DefaultRediscover = 3 * time.Second

// Reader keeps one device of a class open and feeds its events to Handle.
// A lost device is closed and searched for again.
type Reader struct {
	Discoverer *Discoverer
	Class      Class
	Interval   time.Duration
	// Attach is called with every newly opened device before its events.
	Attach func(dev *Device)
	Handle func(ev linux.InputEvent)
	Logger logx.LoggerProvider
}

// Run blocks until ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	if r == nil || r.Handle == nil {
		return errors.NilReceiver()
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultRediscover
	}
	for {
		dev, err := r.Discoverer.Find(r.Class)
		if err != nil {
			logx.Debug(`input discovery failed`, r.Logger, `class`, r.Class, `error`, err)
		} else {
			if r.Attach != nil {
				r.Attach(dev)
			}
			err = r.consume(ctx, dev)
			logx.Warn(`input device lost`, r.Logger, `path`, dev.Path, `error`, err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (r *Reader) consume(ctx context.Context, dev *Device) error {
	stop := context.AfterFunc(ctx, func() { _ = dev.Close() })
	defer func() {
		if stop() {
			_ = dev.Close()
		}
	}()
	return ReadEvents(dev, r.Handle)
}

// Pointer applies pointer events to a Mouse at each SYN_REPORT.
// Positions are in the coordinates of Bounds.
type Pointer struct {
	Mouse  *Mouse
	Bounds image.Rectangle
	AbsX   *linux.AbsInfo
	AbsY   *linux.AbsInfo
	// Moved is called after the position changed.
	Moved func()

	pos     image.Point
	moved   bool
	buttons []buttonEvent
	init    bool
}

type buttonEvent struct {
	button int
	down   bool
}

// Attach resets the pointer for a newly opened device.
func (p *Pointer) Attach(dev *Device) {
	p.AbsX, p.AbsY = dev.AbsX, dev.AbsY
	p.buttons = p.buttons[:0]
	p.moved = false
}

func (p *Pointer) Handle(ev linux.InputEvent) {
	if !p.init {
		x, y := p.Mouse.Get()
		p.pos = image.Pt(x, y)
		if !p.pos.In(p.Bounds) {
			p.pos = p.Bounds.Min.Add(p.Bounds.Size().Div(2))
		}
		p.init = true
	}
	switch ev.Type {
	case linux.EvRel:
		switch ev.Code {
		case linux.RelX:
			p.pos.X = clamp(p.pos.X+int(ev.Value), p.Bounds.Min.X, p.Bounds.Max.X-1)
			p.moved = true
		case linux.RelY:
			p.pos.Y = clamp(p.pos.Y+int(ev.Value), p.Bounds.Min.Y, p.Bounds.Max.Y-1)
			p.moved = true
		}
	case linux.EvAbs:
		switch ev.Code {
		case linux.AbsX, linux.AbsMtPositionX:
			p.pos.X = p.Bounds.Min.X + rescale(ev.Value, p.AbsX, p.Bounds.Dx())
			p.moved = true
		case linux.AbsY, linux.AbsMtPositionY:
			p.pos.Y = p.Bounds.Min.Y + rescale(ev.Value, p.AbsY, p.Bounds.Dy())
			p.moved = true
		}
	case linux.EvKey:
		var b int
		switch ev.Code {
		case linux.BtnLeft, linux.BtnTouch:
			b = ButtonLeft
		case linux.BtnRight:
			b = ButtonRight
		case linux.BtnMiddle:
			b = ButtonMiddle
		default:
			return
		}
		if ev.Value == linux.KeyRepeated {
			return
		}
		p.buttons = append(p.buttons, buttonEvent{button: b, down: ev.Value == linux.KeyPressed})
	case linux.EvSyn:
		if ev.Code == linux.SynDropped {
			p.buttons = p.buttons[:0]
			return
		}
		if ev.Code != linux.SynReport {
			return
		}
		if p.moved {
			p.Mouse.Move(p.pos.X, p.pos.Y)
			if p.Moved != nil {
				p.Moved()
			}
			p.moved = false
		}
		for _, be := range p.buttons {
			if be.down {
				p.Mouse.Press(be.button)
			} else {
				p.Mouse.Release()
			}
		}
		p.buttons = p.buttons[:0]
	}
}

func rescale(v int32, ai *linux.AbsInfo, size int) int {
	if ai == nil || ai.Maximum <= ai.Minimum {
		return clamp(int(v), 0, size-1)
	}
	v = min(max(v, ai.Minimum), ai.Maximum)
	return int(int64(v-ai.Minimum) * int64(size-1) / int64(ai.Maximum-ai.Minimum))
}

func clamp(v, lo, hi int) int { return min(max(v, lo), hi) }

// KeyboardSink queues the key presses of a keyboard device.
type KeyboardSink struct {
	Queue *KeyQueue
	kb    Keyboard
}

// Attach forgets the modifier state of a previous device.
func (s *KeyboardSink) Attach(*Device) { s.kb = Keyboard{} }

func (s *KeyboardSink) Handle(ev linux.InputEvent) {
	if ev.Type != linux.EvKey {
		return
	}
	if k, ok := s.kb.Event(ev.Code, ev.Value); ok {
		s.Queue.Push(k)
	}
}
