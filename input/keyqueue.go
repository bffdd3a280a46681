package input

import "sync"

// Key is one queued character with its modifier state.
type Key struct {
	Char  rune
	Ctrl  bool
	Shift bool
}

// KeyQueue is a fixed capacity ring buffer of keys. When full, Push drops the
// oldest key so producers never block.
type KeyQueue struct {
	mu   sync.Mutex
	buf  []Key
	head int // next read
	tail int // next write
}

func NewKeyQueue(capacity int) *KeyQueue {
	return &KeyQueue{buf: make([]Key, max(capacity, 1)+1)}
}

// Cap is the number of keys the queue holds before dropping the oldest.
func (q *KeyQueue) Cap() int { return len(q.buf) - 1 }

func (q *KeyQueue) Push(k Key) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.push(k)
}

func (q *KeyQueue) push(k Key) {
	q.buf[q.tail] = k
	q.tail = (q.tail + 1) % len(q.buf)
	if q.tail == q.head {
		q.head = (q.head + 1) % len(q.buf)
	}
}

func (q *KeyQueue) Pop() (Key, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == q.tail {
		return Key{}, false
	}
	k := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	return k, true
}

func (q *KeyQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return (q.tail - q.head + len(q.buf)) % len(q.buf)
}

// InjectText queues the characters of s as if typed.
// Carriage returns are dropped and control characters are flagged.
func (q *KeyQueue) InjectText(s string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range s {
		switch {
		case r == '\r':
			continue
		case r == '\n' || r == '\t' || r == '\b':
			q.push(Key{Char: r})
		case r < 0x20:
			q.push(Key{Char: r + '@', Ctrl: true})
		default:
			q.push(Key{Char: r})
		}
	}
}

// Clear drops all queued keys.
func (q *KeyQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head, q.tail = 0, 0
}
