// Package edit applies positional overwrites to source text and produces the
// matching source map.
package edit

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unit is the unit a parser reports offsets in.
type Unit int

const (
	// UTF16 offsets count UTF-16 code units, as JavaScript string indices do.
	UTF16 Unit = iota
	// Bytes offsets count UTF-8 bytes.
	Bytes
)

func (u Unit) String() string {
	if u == Bytes {
		return "bytes"
	}

	return "utf16"
}

// ParseUnit parses "utf16" or "bytes".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "", "utf16", "utf-16":
		return UTF16, nil
	case "bytes", "byte", "utf8", "utf-8":
		return Bytes, nil
	}

	return UTF16, fmt.Errorf("unknown offset unit %q", s)
}

// Text is source text addressable in parser units.
type Text struct {
	src string
	// offsets[u] is the byte offset of unit u, -1 inside a surrogate pair.
	// nil when units and bytes coincide.
	offsets []int
}

// NewText indexes src for the given unit.
func NewText(src string, unit Unit) *Text {
	t := &Text{src: src}
	if unit == Bytes || isASCII(src) {
		return t
	}

	t.offsets = make([]int, 0, len(src)+1)

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])

		t.offsets = append(t.offsets, i)
		if utf16.RuneLen(r) == 2 {
			t.offsets = append(t.offsets, -1)
		}

		i += size
	}

	t.offsets = append(t.offsets, len(src))

	return t
}

// String returns the source text.
func (t *Text) String() string {
	return t.src
}

// Len returns the text length in units.
func (t *Text) Len() int {
	if t.offsets == nil {
		return len(t.src)
	}

	return len(t.offsets) - 1
}

// ByteOffset converts a unit offset to a byte offset.
func (t *Text) ByteOffset(pos int) (int, bool) {
	if pos < 0 || pos > t.Len() {
		return 0, false
	}

	if t.offsets == nil {
		return pos, true
	}

	off := t.offsets[pos]

	return off, off >= 0
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
