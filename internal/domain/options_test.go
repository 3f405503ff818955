package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/litrep/internal/domain"
	"github.com/mouse-blink/litrep/internal/estree/estreetest"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Preset
		wantErr bool
	}{
		{in: "", want: domain.PresetChecksum},
		{in: "checksum", want: domain.PresetChecksum},
		{in: "identity", want: domain.PresetIdentity},
		{in: "sha256", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParsePreset(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	opts, err := domain.DefaultOptions()
	require.NoError(t, err)

	assert.Equal(t, []string{"t", "$t"}, opts.Functions)
	assert.NotNil(t, opts.OnError)
	assert.True(t, opts.ShouldReplace("N/a"))
	assert.True(t, opts.ShouldReplace("B/a"))
	assert.False(t, opts.ShouldReplace("a"))

	got, err := opts.Transform("N/123456789")
	require.NoError(t, err)
	assert.Equal(t, "N/cbf43926", got)

	plugin := domain.NewPlugin(opts)
	assert.False(t, plugin.Eligible("/elsewhere/a.ts"))
}

func TestDefaultOptions_ErrorsAreLoggedNotWarned(t *testing.T) {
	opts, err := domain.DefaultOptions()
	require.NoError(t, err)

	opts.Filter = domain.FilterFunc(everything)
	host := &testHost{Parser: estreetest.Parser{Err: errors.New("bad")}}

	assert.Nil(t, domain.NewPlugin(opts).Transform(host, "t(", "a.js"))
	assert.Empty(t, host.warnings)
}

func TestIdentityOptions(t *testing.T) {
	opts, err := domain.IdentityOptions([]string{"/app/src/**"}, nil)
	require.NoError(t, err)

	assert.Nil(t, opts.OnError)

	plugin := domain.NewPlugin(opts)
	host := &testHost{}

	res := plugin.Transform(host, "t('N/a')", "/app/src/a.ts")
	require.NotNil(t, res)
	assert.Equal(t, "t('N/a')", res.Code)
	require.Len(t, res.Replacements, 1)
	assert.True(t, res.Replacements[0].Applied)

	assert.Nil(t, plugin.Transform(host, "t('N/a')", "/app/lib/a.ts"))
	assert.Equal(t, []string{"/app/src/a.ts"}, host.IDs())
}

func TestOptions_Defaults(t *testing.T) {
	plugin := domain.NewPlugin(domain.Options{})

	assert.True(t, plugin.Eligible("anything"))

	res := plugin.Transform(&testHost{}, "t('N/a'); $t('B/b'); t('c')", "a.js")
	require.NotNil(t, res)
	assert.Len(t, res.Replacements, 2)
}
