// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package compressed supports reading JSONX input that is compressed with
// gzip, zstd, or the LZ4 frame format. The format of an input can be
// detected from its leading magic number.
package compressed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/creachadair/jsonx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression format.
type Format int

const (
	None Format = iota // uncompressed text
	Gzip
	Zstd
	LZ4
)

var formatNames = [...]string{None: "none", Gzip: "gzip", Zstd: "zstd", LZ4: "lz4"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format with the given name, as reported by
// Format.String.
func ParseFormat(name string) (Format, error) {
	for i, s := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return None, fmt.Errorf("unknown compression format %q", name)
}

var magic = []struct {
	prefix []byte
	format Format
}{
	{[]byte{0x1f, 0x8b}, Gzip},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
	{[]byte{0x04, 0x22, 0x4d, 0x18}, LZ4},
}

// Detect reports the format of the data buffered by br, based on its magic
// number. Input that does not begin with a recognized magic number, including
// input too short to have one, is reported as None. No input is consumed.
func Detect(br *bufio.Reader) (Format, error) {
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return None, err
	}
	for _, m := range magic {
		if bytes.HasPrefix(head, m.prefix) {
			return m.format, nil
		}
	}
	return None, nil
}

// NewReader returns a reader that decompresses data in format f from r.
// The caller must close the reader when finished with it; closing it does
// not close r.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression format %v", f)
	}
}

// Open detects the format of r and returns a reader for its decompressed
// contents, as NewReader.
func Open(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	f, err := Detect(br)
	if err != nil {
		return nil, None, fmt.Errorf("detect format: %w", err)
	}
	rc, err := NewReader(br, f)
	if err != nil {
		return nil, f, fmt.Errorf("open %v reader: %w", f, err)
	}
	return rc, f, nil
}

// NewWriter returns a writer that compresses data written to it in format f
// and writes the result to w. The caller must close the writer to flush the
// compressed stream; closing it does not close w.
func NewWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression format %v", f)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewSource returns a jsonx.Source that reads the decompressed contents of r,
// whose format is detected as by Open, in chunks of up to size bytes. If size
// is not positive a default is used.
//
// The decompressor is released when the source reports io.EOF or an error.
// Errors detecting the format or initializing the decompressor are reported
// by the first call to Next.
func NewSource(r io.Reader, size int) jsonx.Source {
	return &source{r: r, size: size}
}

type source struct {
	r    io.Reader
	size int
	rc   io.ReadCloser
	src  jsonx.Source
	err  error
}

func (s *source) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.src == nil {
		rc, _, err := Open(s.r)
		if err != nil {
			s.err = err
			return nil, err
		}
		s.rc, s.src = rc, jsonx.ReaderSource(rc, s.size)
	}
	data, err := s.src.Next()
	if err != nil {
		s.err = err
		if cerr := s.rc.Close(); cerr != nil && err == io.EOF {
			s.err = cerr
		}
		return nil, s.err
	}
	return data, nil
}
