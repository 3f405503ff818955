package controller

import (
	"time"

	m "github.com/mouse-blink/litrep/internal/model"
)

// Message types.
type tickMsg time.Time

type estimationMsg struct {
	reports []m.FileReport
}

type runStartMsg struct {
	files   int
	threads int
}

type fileDoneMsg struct {
	report m.FileReport
}

type runDoneMsg struct {
	reports []m.FileReport
}

type warningMsg struct {
	plugin string
	id     string
	err    error
}

// List item types.
type fileItem struct {
	path   string
	status m.FileStatus
	count  int
	cached bool
	output string
	err    error
}

func (f fileItem) FilterValue() string {
	return f.path + " " + string(f.status)
}

func newFileItem(report m.FileReport) fileItem {
	return fileItem{
		path:   string(report.Source.Origin),
		status: report.Status,
		count:  report.Replacements,
		cached: report.Cached,
		output: string(report.Output),
		err:    report.Err,
	}
}
