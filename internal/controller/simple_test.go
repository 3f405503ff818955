package controller

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/litrep/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func report(path string, status m.FileStatus, count int) m.FileReport {
	return m.FileReport{
		Source:       m.Source{Origin: m.Path(path), ID: path},
		Status:       status,
		Replacements: count,
	}
}

func TestSimpleUI_DisplayEstimation_PrintsTable(t *testing.T) {
	cmd, out, _ := newTestCmd()
	ui := NewSimpleUI(cmd)

	reports := []m.FileReport{
		report("src/b.ts", m.StatusChanged, 1),
		report("src/a.vue", m.StatusChanged, 2),
		report("src/c.js", m.StatusFailed, 0),
	}

	require.NoError(t, ui.DisplayEstimation(reports, nil))

	output := out.String()
	for _, want := range []string{"PATH", "LITERALS", "src/a.vue", "src/b.ts", "failed", "TOTAL FILES 3", "3"} {
		assert.Containsf(t, output, want, "output:\n%s", output)
	}

	assert.Less(t, strings.Index(output, "src/a.vue"), strings.Index(output, "src/b.ts"), "rows sorted by path")
}

func TestSimpleUI_DisplayEstimation_Empty(t *testing.T) {
	cmd, out, _ := newTestCmd()

	require.NoError(t, NewSimpleUI(cmd).DisplayEstimation(nil, nil))
	assert.Contains(t, out.String(), "No eligible source files found")
}

func TestSimpleUI_DisplayEstimation_Error(t *testing.T) {
	cmd, out, _ := newTestCmd()
	boom := errors.New("boom")

	err := NewSimpleUI(cmd).DisplayEstimation(nil, boom)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, out.String(), "estimation error: boom")
}

func TestSimpleUI_DisplayTransform(t *testing.T) {
	cmd, out, _ := newTestCmd()
	ui := NewSimpleUI(cmd)

	changed := report("src/a.ts", m.StatusChanged, 2)
	changed.Output = "dist/src/a.ts"
	cached := report("src/b.ts", m.StatusUnchanged, 0)
	cached.Cached = true

	require.NoError(t, ui.DisplayTransform([]m.FileReport{
		changed,
		cached,
		report("src/c.ts", m.StatusFailed, 0),
	}))

	output := out.String()
	for _, want := range []string{
		"src/a.ts", "dist/src/a.ts", "changed",
		"unchanged (cached)", "failed",
		"TOTAL FILES 3", "1 CHANGED", "1 FAILED", "1 CACHED",
	} {
		assert.Containsf(t, output, want, "output:\n%s", output)
	}

	assert.NotContains(t, output, "\x1b[", "no colors without a terminal")
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	diff := "--- src/a.ts\n+++ src/a.ts\n@@ -1 +1 @@\n-t('N/a')\n+t('N/e8b7be43')\n"

	t.Run("plain", func(t *testing.T) {
		cmd, out, _ := newTestCmd()

		NewSimpleUI(cmd).DisplayDiff("src/a.ts", diff)
		assert.Equal(t, diff, out.String())
	})

	t.Run("colored keeps every line", func(t *testing.T) {
		cmd, out, _ := newTestCmd()

		NewSimpleUI(cmd, WithColor()).DisplayDiff("src/a.ts", diff)

		for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
			assert.Contains(t, out.String(), line)
		}
	})
}

func TestSimpleUI_DisplayWarning(t *testing.T) {
	cmd, out, errOut := newTestCmd()
	ui := NewSimpleUI(cmd)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ui.DisplayWarning("literal-replacer", "/app/src/a.ts", errors.New("parse /app/src/a.ts: unexpected token"))
		}()
	}

	wg.Wait()

	assert.Empty(t, out.String())
	assert.Equal(t, 8, strings.Count(errOut.String(), "warning: (literal-replacer plugin) /app/src/a.ts: parse"))
}
