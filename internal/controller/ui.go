// Package controller provides output adapters for displaying literal replacer results.
package controller

import (
	m "github.com/mouse-blink/litrep/internal/model"
)

// UI defines how results reach the user.
// Implementations must be safe for concurrent use: warnings arrive from workers.
type UI interface {
	// DisplayEstimation lists eligible files with the number of replaceable literals.
	DisplayEstimation(reports []m.FileReport, err error) error
	// DisplayTransform summarizes a run that wrote output files.
	DisplayTransform(reports []m.FileReport) error
	// DisplayDiff prints the unified diff of one file.
	DisplayDiff(path m.Path, diff string)
	// DisplayWarning surfaces a failure plugin reported for a file.
	DisplayWarning(plugin, id string, err error)
}

// Progress is implemented by UIs that follow a run file by file. Calls may
// come from several workers at once.
type Progress interface {
	// DisplayStart announces the number of files a run processes and its worker count.
	DisplayStart(files, threads int)
	// DisplayProgress reports one processed file.
	DisplayProgress(report m.FileReport)
	// DisplayAbort ends the progress display of a run that failed with err.
	DisplayAbort(err error)
}

// Option configures a SimpleUI.
type Option func(*SimpleUI)

// WithColor styles the output with terminal colors.
func WithColor() Option {
	return func(s *SimpleUI) {
		s.color = true
	}
}
