// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonx

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First == loc.Last {
		return loc.First.String()
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// position tracks the offset, line, and column of the next unread byte of
// input. The zero value is the start of the input.
type position struct {
	offset, line, col int // line is 0-based
}

func (p position) lineCol() LineCol { return LineCol{Line: p.line + 1, Column: p.col} }

// advance updates p for the consumption of b.
func (p *position) advance(b byte) {
	p.offset++
	if b == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
}
