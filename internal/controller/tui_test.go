package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/litrep/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd { return tea.Quit }
func (q quitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return q, tea.Quit
}
func (q quitModel) View() string { return "" }

// waitModel runs until it is told to quit.
type waitModel struct{}

func (w waitModel) Init() tea.Cmd { return nil }
func (w waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return w, nil
}
func (w waitModel) View() string { return "" }

func newTestTUI(t *testing.T) (*TUI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	tui := NewTUI(cmd)
	tui.options = append(tui.options, tea.WithoutRenderer(), tea.WithoutSignalHandler())

	return tui, &out, &errOut
}

func within(t *testing.T, name string, fn func()) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s timed out", name)
	}
}

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	tui, _, _ := newTestTUI(t)

	if err := tui.startWithModel(quitModel{}); err != nil {
		t.Fatalf("startWithModel error = %v", err)
	}

	// a second start keeps the first program
	if err := tui.startWithModel(waitModel{}); err != nil {
		t.Fatalf("startWithModel again error = %v", err)
	}

	within(t, "Wait()", func() {
		if err := tui.Wait(); err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	})

	if tui.running() {
		t.Fatalf("running() = true after the program quit")
	}

	// sending to a finished program is a no-op
	tui.send(runStartMsg{files: 1})

	within(t, "Close()", tui.Close)
}

func TestTUI_CloseStopsRunningProgram(t *testing.T) {
	tui, _, _ := newTestTUI(t)

	if err := tui.startWithModel(waitModel{}); err != nil {
		t.Fatalf("startWithModel error = %v", err)
	}

	if !tui.running() {
		t.Fatalf("running() = false, want true")
	}

	within(t, "DisplayAbort()", func() { tui.DisplayAbort(errors.New("disk full")) })

	if tui.running() {
		t.Fatalf("running() = true after DisplayAbort")
	}
}

func TestTUI_NoProgram(t *testing.T) {
	tui, out, errOut := newTestTUI(t)

	// nothing started: Wait, Close and send return at once
	within(t, "idle TUI", func() {
		if err := tui.Wait(); err != nil {
			t.Errorf("Wait() error = %v", err)
		}

		tui.Close()
		tui.Close()
		tui.send(fileDoneMsg{})
		tui.DisplayProgress(m.FileReport{})
	})

	if err := tui.DisplayEstimation(nil, errSentinel); !errors.Is(err, errSentinel) {
		t.Fatalf("DisplayEstimation error = %v, want %v", err, errSentinel)
	}

	if err := tui.DisplayEstimation(nil, nil); err != nil {
		t.Fatalf("DisplayEstimation(nil) error = %v", err)
	}

	if err := tui.DisplayTransform(nil); err != nil {
		t.Fatalf("DisplayTransform(nil) error = %v", err)
	}

	if !strings.Contains(out.String(), "estimation error: boom") || !strings.Contains(out.String(), "No eligible source files found") {
		t.Fatalf("plain output missing\n%s", out.String())
	}

	tui.DisplayWarning("litrep", "src/a.ts", errSentinel)

	if !strings.Contains(errOut.String(), "src/a.ts: boom") {
		t.Fatalf("warning not printed\n%s", errOut.String())
	}

	tui.DisplayDiff("src/a.ts", "--- a\n+++ b\n@@ -1 +1 @@\n-x\n+y\n")

	if !strings.Contains(out.String(), "+y") {
		t.Fatalf("diff not printed\n%s", out.String())
	}
}

func TestTUI_RunLifecycle(t *testing.T) {
	tui, out, errOut := newTestTUI(t)

	reports := []m.FileReport{
		{Source: m.Source{Origin: "src/a.ts"}, Status: m.StatusChanged, Replacements: 1, Output: "dist/src/a.ts"},
		{Source: m.Source{Origin: "src/b.ts"}, Status: m.StatusUnchanged},
	}

	tui.DisplayStart(len(reports), 2)

	if !tui.running() {
		t.Fatalf("DisplayStart did not start the program")
	}

	for _, report := range reports {
		tui.DisplayProgress(report)
	}

	tui.DisplayWarning("litrep", "src/c.ts", errSentinel)

	if errOut.Len() != 0 {
		t.Fatalf("warning printed while the program runs: %s", errOut.String())
	}

	// the results view waits for a key press
	go func() {
		time.Sleep(50 * time.Millisecond)
		tui.Close()
	}()

	within(t, "DisplayTransform()", func() {
		if err := tui.DisplayTransform(reports); err != nil {
			t.Errorf("DisplayTransform error = %v", err)
		}
	})

	if !strings.Contains(out.String(), "src/a.ts") || !strings.Contains(out.String(), "1 CHANGED") {
		t.Fatalf("summary table missing after the program ended\n%s", out.String())
	}
}

func TestTUI_DisplayEstimation_WaitsForQuit(t *testing.T) {
	tui, _, _ := newTestTUI(t)

	go closeOnceRunning(tui)

	within(t, "DisplayEstimation()", func() {
		err := tui.DisplayEstimation([]m.FileReport{{Source: m.Source{Origin: "src/a.ts"}, Replacements: 2}}, nil)
		if err != nil {
			t.Errorf("DisplayEstimation error = %v", err)
		}
	})
}

var errSentinel = errors.New("boom")

// closeOnceRunning quits the program as soon as it is up, like a user pressing q.
func closeOnceRunning(tui *TUI) {
	for !tui.running() {
		time.Sleep(time.Millisecond)
	}

	tui.Close()
}
