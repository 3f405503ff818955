package edit

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	m "github.com/mouse-blink/litrep/internal/model"
)

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// MapOptions configures source map generation.
type MapOptions struct {
	// File is the generated file name.
	File string
	// Source is the original file name listed in sources.
	Source string
	// IncludeContent embeds the original text as sourcesContent.
	IncludeContent bool
}

// SourceMap builds a high resolution source map: every unedited character
// maps to its original position, every replacement maps to the start of the
// span it replaced. Columns are UTF-16 code units.
func (o *Output) SourceMap(opts MapOptions) *m.SourceMap {
	var enc mappings

	pos := 0

	for _, e := range o.edits {
		enc.unedited(o.src[pos:e.Start])
		enc.replaced(e.Text, o.src[e.Start:e.End])
		pos = e.End
	}

	enc.unedited(o.src[pos:])

	sm := &m.SourceMap{
		Version:  3,
		File:     opts.File,
		Sources:  []string{opts.Source},
		Names:    []string{},
		Mappings: enc.String(),
	}

	if opts.IncludeContent {
		sm.SourcesContent = []string{o.src}
	}

	return sm
}

// mappings encodes segments of a single-source map.
type mappings struct {
	sb strings.Builder

	genCol   int
	origLine int
	origCol  int

	prevGenCol   int
	prevOrigLine int
	prevOrigCol  int
	lineStarted  bool
}

func (e *mappings) unedited(text string) {
	for _, r := range text {
		if r == '\n' {
			e.origLine++
			e.origCol = 0
			e.newline()

			continue
		}

		e.segment()

		w := runeUnits(r)
		e.genCol += w
		e.origCol += w
	}
}

func (e *mappings) replaced(content, original string) {
	if content != "" {
		e.segment()
	}

	for i, r := range content {
		if r == '\n' {
			e.newline()

			if i+1 < len(content) {
				e.segment()
			}

			continue
		}

		e.genCol += runeUnits(r)
	}

	for _, r := range original {
		if r == '\n' {
			e.origLine++
			e.origCol = 0

			continue
		}

		e.origCol += runeUnits(r)
	}
}

func (e *mappings) segment() {
	if e.lineStarted {
		e.sb.WriteByte(',')
	}

	writeVLQ(&e.sb, e.genCol-e.prevGenCol)
	writeVLQ(&e.sb, 0)
	writeVLQ(&e.sb, e.origLine-e.prevOrigLine)
	writeVLQ(&e.sb, e.origCol-e.prevOrigCol)

	e.prevGenCol = e.genCol
	e.prevOrigLine = e.origLine
	e.prevOrigCol = e.origCol
	e.lineStarted = true
}

func (e *mappings) newline() {
	e.sb.WriteByte(';')
	e.genCol = 0
	e.prevGenCol = 0
	e.lineStarted = false
}

func (e *mappings) String() string {
	return e.sb.String()
}

func writeVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}

	for {
		digit := u & 31
		u >>= 5

		if u > 0 {
			digit |= 32
		}

		sb.WriteByte(base64Digits[digit])

		if u == 0 {
			return
		}
	}
}

func runeUnits(r rune) int {
	if r == utf8.RuneError {
		return 1
	}

	return utf16.RuneLen(r)
}
