package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/litrep/internal/domain"
)

func TestCache_Resolve(t *testing.T) {
	calls := 0
	fn := func(value string) (string, error) {
		calls++
		return value + "!", nil
	}

	cache := domain.NewCache()

	for range 3 {
		got, err := cache.Resolve("N/a", fn)
		require.NoError(t, err)
		assert.Equal(t, "N/a!", got)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_EmptyResultIsCached(t *testing.T) {
	calls := 0
	fn := func(string) (string, error) {
		calls++
		return "", nil
	}

	cache := domain.NewCache()

	for range 2 {
		got, err := cache.Resolve("N/a", fn)
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	assert.Equal(t, 1, calls)
}

func TestCache_FailuresAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	fn := func(value string) (string, error) {
		if fail {
			return "", boom
		}

		return value, nil
	}

	cache := domain.NewCache()

	_, err := cache.Resolve("N/a", fn)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len())

	fail = false

	got, err := cache.Resolve("N/a", fn)
	require.NoError(t, err)
	assert.Equal(t, "N/a", got)
}

func TestCache_RecoversPanics(t *testing.T) {
	cache := domain.NewCache()

	_, err := cache.Resolve("N/a", func(string) (string, error) { panic("kaput") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaput")
	assert.Zero(t, cache.Len())
}
