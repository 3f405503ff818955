package transforms

import (
	"hash/crc32"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "N/123456789", want: "N/cbf43926"},
		{value: "B/hello", want: "B/3610a686"},
		{value: "N/The quick brown fox jumps over the lazy dog", want: "N/414fa339"},
		{value: "N/", want: "N/0"},
		{value: "N/a/b", want: "N/" + strconv.FormatUint(uint64(crc32.ChecksumIEEE([]byte("a/b"))), 16)},
		{value: "123456789", want: "cbf43926"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Checksum(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	first := mustChecksum(t, "N/Save")

	for range 5 {
		assert.Equal(t, first, mustChecksum(t, "N/Save"))
	}

	assert.Regexp(t, `^N/[0-9a-f]{1,8}$`, first)
}

func TestMarkers(t *testing.T) {
	accept := Markers()

	assert.True(t, accept("N/hello"))
	assert.True(t, accept("B/hello"))
	assert.False(t, accept("X/hello"))
	assert.False(t, accept("n/hello"))
	assert.False(t, accept(""))

	onlyN := Markers("N/")
	assert.True(t, onlyN("N/hello"))
	assert.False(t, onlyN("B/hello"))
}

func TestIdentityAndAny(t *testing.T) {
	got, err := Identity("N/keep me")
	require.NoError(t, err)
	assert.Equal(t, "N/keep me", got)
	assert.True(t, Any("anything"))
}

func mustChecksum(t *testing.T, value string) string {
	t.Helper()

	got, err := Checksum(value)
	require.NoError(t, err)

	return got
}
