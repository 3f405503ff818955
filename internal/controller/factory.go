package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewUI creates the UI for cmd: the interactive TUI on a terminal, plain
// text otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
