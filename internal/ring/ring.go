// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ring implements a fixed-capacity circular byte buffer.
//
// A Buffer keeps one slot permanently empty so that a full buffer can be
// distinguished from an empty one: a buffer of capacity C holds at most C-1
// bytes. All wraparound arithmetic is confined to this package.
package ring

import "fmt"

// Limits on the capacity of a Buffer.
const (
	MinCapacity     = 8
	MaxCapacity     = 10000000
	DefaultCapacity = 2048
)

// A Buffer is a circular queue of bytes with head and tail indices.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	data       []byte
	head, tail int
}

// New constructs an empty Buffer with the given capacity. Capacities below
// MinCapacity are raised to MinCapacity, and capacities above MaxCapacity are
// lowered to MaxCapacity.
func New(capacity int) *Buffer {
	capacity = min(max(capacity, MinCapacity), MaxCapacity)
	return &Buffer{data: make([]byte, capacity)}
}

// Cap reports the capacity of b, including the reserved empty slot.
func (b *Buffer) Cap() int { return len(b.data) }

// MaxLen reports the maximum number of bytes b can hold.
func (b *Buffer) MaxLen() int { return len(b.data) - 1 }

// Len reports the number of bytes currently stored in b.
func (b *Buffer) Len() int {
	if b.tail < b.head {
		return len(b.data) + b.tail - b.head
	}
	return b.tail - b.head
}

// Margin reports the number of bytes that can be added to b before it is full.
func (b *Buffer) Margin() int { return len(b.data) - b.Len() - 1 }

// IsEmpty reports whether b contains no data.
func (b *Buffer) IsEmpty() bool { return b.head == b.tail }

// Add adds c at the tail of b. It reports false without modifying b if b is
// full.
func (b *Buffer) Add(c byte) bool {
	if b.Margin() == 0 {
		return false
	}
	b.data[b.tail] = c
	b.tail = b.wrap(b.tail + 1)
	return true
}

// AddAll adds all of p at the tail of b. If there is not room for all of p, it
// reports false and b is not modified.
func (b *Buffer) AddAll(p []byte) bool {
	if b.Margin() < len(p) {
		return false
	}
	n := copy(b.data[b.tail:], p)
	copy(b.data, p[n:]) // wrapped segment, possibly empty
	b.tail = b.wrap(b.tail + len(p))
	return true
}

// Peek returns the byte at the head of b without removing it.
// It reports false if b is empty.
func (b *Buffer) Peek() (byte, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	return b.data[b.head], true
}

// Poll removes and returns the byte at the head of b.
// It reports false if b is empty.
func (b *Buffer) Poll() (byte, bool) {
	c, ok := b.Peek()
	if ok {
		b.head = b.wrap(b.head + 1)
	}
	return c, ok
}

// PeekN returns a copy of the first n bytes of b without removing them.
// If n > b.Len(), the result contains b.Len() bytes.
func (b *Buffer) PeekN(n int) []byte {
	n = b.clamp(n)
	return b.window(b.head, n).AppendTo(make([]byte, 0, n))
}

// PollN removes and returns a copy of the first n bytes of b.
// If n > b.Len(), all of b is returned.
func (b *Buffer) PollN(n int) []byte {
	out := b.PeekN(n)
	b.head = b.wrap(b.head + len(out))
	return out
}

// PeekWindow returns a view of n bytes of b beginning offset bytes after the
// head, without removing them. It reports false if offset < 0 or offset is
// not less than b.Len(). The length of the view is clamped to the number of
// bytes available after offset.
func (b *Buffer) PeekWindow(n, offset int) (Window, bool) {
	if offset < 0 || offset >= b.Len() {
		return Window{}, false
	}
	n = max(min(n, b.Len()-offset), 0)
	return b.window(b.wrap(b.head+offset), n), true
}

// PollWindow removes n bytes from the head of b and returns a view of them.
// It reports false if b is empty. The view remains valid until the removed
// storage is overwritten by subsequent additions.
func (b *Buffer) PollWindow(n int) (Window, bool) {
	if b.IsEmpty() {
		return Window{}, false
	}
	n = b.clamp(n)
	w := b.window(b.head, n)
	b.head = b.wrap(b.head + n)
	return w, true
}

// Skip discards up to n bytes from the head of b without copying them, and
// reports the number of bytes discarded.
func (b *Buffer) Skip(n int) int {
	n = b.clamp(n)
	b.head = b.wrap(b.head + n)
	return n
}

// Clear discards the contents of b.
func (b *Buffer) Clear() { b.head, b.tail = 0, 0 }

// Bytes returns a copy of the contents of b.
func (b *Buffer) Bytes() []byte { return b.PeekN(b.Len()) }

// String returns a human-readable summary of b for debugging.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(cap=%d, head=%d, tail=%d, data=%q)",
		len(b.data), b.head, b.tail, b.PeekN(100))
}

func (b *Buffer) wrap(i int) int { return i % len(b.data) }

func (b *Buffer) clamp(n int) int { return max(min(n, b.Len()), 0) }

func (b *Buffer) window(off, n int) Window { return Window{data: b.data, off: off, n: n} }
