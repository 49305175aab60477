// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ring

import "go4.org/mem"

// A Window is a read-only view of a contiguous range of a Buffer, which may
// wrap around the end of the buffer's storage. A Window does not copy data,
// and is only valid until the storage it refers to is overwritten.
type Window struct {
	data   []byte
	off, n int
}

// Len reports the number of bytes in the view.
func (w Window) Len() int { return w.n }

// At returns the byte at offset i of the view, 0 ≤ i < w.Len().
func (w Window) At(i int) byte {
	if i < 0 || i >= w.n {
		panic("ring: window index out of range")
	}
	return w.data[(w.off+i)%len(w.data)]
}

// Segments returns the contents of w as two contiguous views: the bytes up to
// the end of the storage, then the bytes wrapped around to its start. The
// second view is empty if w does not wrap.
func (w Window) Segments() (head, tail mem.RO) {
	if w.n == 0 {
		return mem.RO{}, mem.RO{}
	}
	end := w.off + w.n
	if end <= len(w.data) {
		return mem.B(w.data[w.off:end]), mem.RO{}
	}
	return mem.B(w.data[w.off:]), mem.B(w.data[:end-len(w.data)])
}

// Equal reports whether the contents of w are equal to s.
func (w Window) Equal(s string) bool {
	if len(s) != w.n {
		return false
	}
	head, tail := w.Segments()
	return head.Equal(mem.S(s[:head.Len()])) && tail.Equal(mem.S(s[head.Len():]))
}

// AppendTo appends the contents of w to buf and returns the updated slice.
func (w Window) AppendTo(buf []byte) []byte {
	head, tail := w.Segments()
	return mem.Append(mem.Append(buf, head), tail)
}

// String returns a copy of the contents of w as a string.
func (w Window) String() string { return string(w.AppendTo(make([]byte, 0, w.n))) }
