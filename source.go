// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import (
	"context"
	"fmt"
	"io"
)

// A Source delivers input text to a Tokenizer in chunks. Each call to Next
// returns the next chunk of input, or io.EOF when no further input is
// available. Any other error aborts tokenization and is reported to the
// caller.
//
// A chunk may be empty, and chunk boundaries may fall anywhere in the input,
// including within a token or a multi-byte rune. The Tokenizer does not
// retain a chunk beyond the next call to Next.
type Source interface {
	Next() ([]byte, error)
}

// FuncSource adapts a function to the Source interface.
type FuncSource func() ([]byte, error)

// Next implements the Source interface.
func (f FuncSource) Next() ([]byte, error) { return f() }

// ChunkSource returns a Source that delivers each of chunks in order.
func ChunkSource(chunks ...string) Source {
	return FuncSource(func() ([]byte, error) {
		if len(chunks) == 0 {
			return nil, io.EOF
		}
		next := chunks[0]
		chunks = chunks[1:]
		return []byte(next), nil
	})
}

// StringSource returns a Source that delivers s as a single chunk.
func StringSource(s string) Source { return ChunkSource(s) }

// BytesSource returns a Source that delivers data as a single chunk.
// The Source does not copy data, and the caller must not modify it while the
// source is in use.
func BytesSource(data []byte) Source {
	done := false
	return FuncSource(func() ([]byte, error) {
		if done {
			return nil, io.EOF
		}
		done = true
		return data, nil
	})
}

// ReaderSource returns a Source that reads chunks of up to size bytes from r.
// If size ≤ 0, a default size is used.
func ReaderSource(r io.Reader, size int) Source {
	if size <= 0 {
		size = 4096
	}
	return &readerSource{r: r, buf: make([]byte, size)}
}

type readerSource struct {
	r   io.Reader
	buf []byte
	err error
}

func (s *readerSource) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	n, err := s.r.Read(s.buf)
	if err == io.EOF {
		s.err = err
		if n == 0 {
			return nil, io.EOF
		}
	} else if err != nil {
		s.err = fmt.Errorf("read input: %w", err)
		return nil, s.err
	}
	return s.buf[:n], nil
}

// ChanSource returns a Source that receives chunks from ch, for input produced
// asynchronously by another goroutine. The source reports io.EOF when ch is
// closed. If ctx ends before a chunk is available, Next reports the context's
// error.
func ChanSource(ctx context.Context, ch <-chan []byte) Source {
	return FuncSource(func() ([]byte, error) {
		select {
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		case data, ok := <-ch:
			if !ok {
				return nil, io.EOF
			}
			return data, nil
		}
	})
}
