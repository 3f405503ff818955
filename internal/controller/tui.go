package controller

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/litrep/internal/model"
)

// TUI implements UI and Progress with an interactive Bubble Tea program.
// Diffs and anything reported outside a running program go through a
// colored SimpleUI.
type TUI struct {
	cmd     *cobra.Command
	plain   *SimpleUI
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
	err     error
}

// NewTUI creates a TUI drawing on the command's output stream.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		cmd:   cmd,
		plain: NewSimpleUI(cmd, WithColor()),
		options: []tea.ProgramOption{
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
			tea.WithAltScreen(),
		},
	}
}

// DisplayEstimation opens a filterable list of the files and waits until the user quits.
func (t *TUI) DisplayEstimation(reports []m.FileReport, err error) error {
	if err != nil || len(reports) == 0 {
		return t.plain.DisplayEstimation(reports, err)
	}

	if err := t.startWithModel(newListModel()); err != nil {
		return err
	}

	t.send(estimationMsg{reports: reports})

	return t.Wait()
}

// DisplayStart opens the progress view of a run.
func (t *TUI) DisplayStart(files, threads int) {
	if err := t.startWithModel(newRunModel()); err != nil {
		return
	}

	t.send(runStartMsg{files: files, threads: threads})
}

// DisplayProgress advances the progress view by one file.
func (t *TUI) DisplayProgress(report m.FileReport) {
	t.send(fileDoneMsg{report: report})
}

// DisplayAbort closes the run view so the error reaches a restored terminal.
func (t *TUI) DisplayAbort(_ error) {
	t.Close()
}

// DisplayTransform switches the run view to its results, waits until the
// user quits and leaves the summary table on the terminal.
func (t *TUI) DisplayTransform(reports []m.FileReport) error {
	if len(reports) == 0 && !t.running() {
		return t.plain.DisplayTransform(reports)
	}

	if err := t.startWithModel(newRunModel()); err != nil {
		return err
	}

	t.send(runDoneMsg{reports: reports})

	if err := t.Wait(); err != nil {
		return err
	}

	return t.plain.DisplayTransform(reports)
}

// DisplayDiff prints the diff in color.
func (t *TUI) DisplayDiff(path m.Path, diff string) {
	t.plain.DisplayDiff(path, diff)
}

// DisplayWarning shows the warning in the running view, or prints it.
func (t *TUI) DisplayWarning(plugin, id string, err error) {
	if t.running() {
		t.send(warningMsg{plugin: plugin, id: id, err: err})
		return
	}

	t.plain.DisplayWarning(plugin, id, err)
}

// Wait blocks until the program exits. It returns at once when nothing runs.
func (t *TUI) Wait() error {
	t.mu.Lock()
	started, done := t.started, t.done
	t.mu.Unlock()

	if !started {
		return nil
	}

	<-done

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// startWithModel runs model unless a program is already up.
func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, t.options...)
	t.done = make(chan struct{})
	t.started = true

	go func(program *tea.Program, done chan struct{}) {
		_, err := program.Run()

		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		close(done)
	}(t.program, t.done)

	return nil
}

// send delivers msg to the running program; without one it is dropped.
func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil || !t.running() {
		return
	}

	program.Send(msg)
}

func (t *TUI) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return false
	}

	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
