package edit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrOutOfRange reports a span outside the text, empty, or splitting a character.
	ErrOutOfRange = errors.New("span out of range")
	// ErrOverlap reports a span overlapping an already scheduled one.
	ErrOverlap = errors.New("span overlaps a previous edit")
)

// Edit is one scheduled overwrite in byte offsets.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Buffer collects overwrites over an immutable source text.
type Buffer struct {
	text  *Text
	edits []Edit // sorted by Start
}

// NewBuffer creates a buffer over src addressed in unit offsets.
func NewBuffer(src string, unit Unit) *Buffer {
	return &Buffer{text: NewText(src, unit)}
}

// Overwrite schedules replacing [start, end) with content.
func (b *Buffer) Overwrite(start, end int, content string) error {
	bs, okStart := b.text.ByteOffset(start)
	be, okEnd := b.text.ByteOffset(end)

	if !okStart || !okEnd || bs >= be {
		return fmt.Errorf("overwrite %d:%d: %w", start, end, ErrOutOfRange)
	}

	i := sort.Search(len(b.edits), func(i int) bool { return b.edits[i].Start >= be })
	if i > 0 && b.edits[i-1].End > bs {
		return fmt.Errorf("overwrite %d:%d: %w", start, end, ErrOverlap)
	}

	b.edits = append(b.edits, Edit{})
	copy(b.edits[i+1:], b.edits[i:])
	b.edits[i] = Edit{Start: bs, End: be, Text: content}

	return nil
}

// Len returns the number of scheduled edits.
func (b *Buffer) Len() int {
	return len(b.edits)
}

// Apply realizes the edited text.
func (b *Buffer) Apply() *Output {
	src := b.text.String()
	edits := append([]Edit(nil), b.edits...)
	outStarts := make([]int, len(edits))

	var sb strings.Builder

	sb.Grow(len(src))

	pos := 0

	for i, e := range edits {
		sb.WriteString(src[pos:e.Start])
		outStarts[i] = sb.Len()
		sb.WriteString(e.Text)
		pos = e.End
	}

	sb.WriteString(src[pos:])

	return &Output{
		Code:      sb.String(),
		src:       src,
		edits:     edits,
		outStarts: outStarts,
	}
}

// Output is the result of applying a buffer.
type Output struct {
	Code string

	src       string
	edits     []Edit
	outStarts []int
}

// Changed reports whether any edit was applied.
func (o *Output) Changed() bool {
	return len(o.edits) > 0
}

// OriginalOffset maps a byte offset in Code back to a byte offset in the
// original text. Offsets inside a replacement map to the replaced span's start.
func (o *Output) OriginalOffset(out int) int {
	i := sort.Search(len(o.outStarts), func(i int) bool { return o.outStarts[i] > out }) - 1
	if i < 0 {
		return out
	}

	e := o.edits[i]
	replacedEnd := o.outStarts[i] + len(e.Text)

	if out < replacedEnd {
		return e.Start
	}

	return e.End + (out - replacedEnd)
}
