package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ApplyOrderIndependent(t *testing.T) {
	src := "t('N/a'); t('N/b'); t('N/c')"

	forward := NewBuffer(src, UTF16)
	require.NoError(t, forward.Overwrite(2, 7, "'A'"))
	require.NoError(t, forward.Overwrite(12, 17, "'BB'"))
	require.NoError(t, forward.Overwrite(22, 27, "'C'"))

	backward := NewBuffer(src, UTF16)
	require.NoError(t, backward.Overwrite(22, 27, "'C'"))
	require.NoError(t, backward.Overwrite(2, 7, "'A'"))
	require.NoError(t, backward.Overwrite(12, 17, "'BB'"))

	want := "t('A'); t('BB'); t('C')"
	assert.Equal(t, want, forward.Apply().Code)
	assert.Equal(t, want, backward.Apply().Code)
	assert.Equal(t, 3, forward.Len())
}

func TestBuffer_NoEdits(t *testing.T) {
	out := NewBuffer("const a = 1", UTF16).Apply()

	assert.False(t, out.Changed())
	assert.Equal(t, "const a = 1", out.Code)
	assert.Equal(t, 5, out.OriginalOffset(5))
}

func TestBuffer_Errors(t *testing.T) {
	b := NewBuffer("t('N/a') + '😀'", UTF16)
	require.NoError(t, b.Overwrite(2, 7, "'x'"))

	tests := []struct {
		name       string
		start, end int
		want       error
	}{
		{name: "overlap left", start: 1, end: 3, want: ErrOverlap},
		{name: "overlap inside", start: 3, end: 5, want: ErrOverlap},
		{name: "same span", start: 2, end: 7, want: ErrOverlap},
		{name: "empty", start: 8, end: 8, want: ErrOutOfRange},
		{name: "reversed", start: 9, end: 8, want: ErrOutOfRange},
		{name: "past end", start: 8, end: 100, want: ErrOutOfRange},
		{name: "negative", start: -1, end: 1, want: ErrOutOfRange},
		{name: "splits surrogate pair", start: 12, end: 13, want: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, b.Overwrite(tt.start, tt.end, "''"), tt.want)
		})
	}

	// adjacent spans do not overlap
	assert.NoError(t, b.Overwrite(7, 8, ")"))
	assert.NoError(t, b.Overwrite(0, 2, "t("))
}

func TestOutput_OriginalOffset(t *testing.T) {
	b := NewBuffer("ab'xyz'cd", Bytes)
	require.NoError(t, b.Overwrite(2, 7, "'Q'"))

	out := b.Apply()
	require.Equal(t, "ab'Q'cd", out.Code)

	want := []int{0, 1, 2, 2, 2, 7, 8, 9}
	for i, w := range want {
		assert.Equalf(t, w, out.OriginalOffset(i), "OriginalOffset(%d)", i)
	}
}

func TestOutput_SpanCorrectness(t *testing.T) {
	src := "x = t('N/é')\ny = t('N/😀', 3)\n"
	b := NewBuffer(src, UTF16)
	require.NoError(t, b.Overwrite(6, 11, "'N/1'"))
	require.NoError(t, b.Overwrite(19, 25, "'N/22'"))

	out := b.Apply()
	assert.Equal(t, "x = t('N/1')\ny = t('N/22', 3)\n", out.Code)

	// every byte outside the replacements is identical to the original byte it maps to
	inReplacement := func(i int) bool {
		return (i >= 6 && i < 11) || (i >= 19 && i < 25)
	}

	for i := 0; i < len(out.Code); i++ {
		if inReplacement(i) {
			continue
		}

		orig := out.OriginalOffset(i)
		assert.Equalf(t, src[orig], out.Code[i], "byte %d maps to %d", i, orig)
	}
}
