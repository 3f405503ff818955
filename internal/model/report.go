package model

// FileStatus describes what happened to one file during a run.
type FileStatus string

const (
	// StatusChanged means at least one literal was rewritten.
	StatusChanged FileStatus = "changed"
	// StatusUnchanged means the pass produced no edits.
	StatusUnchanged FileStatus = "unchanged"
	// StatusFailed means the pass reported an error and the file was left untouched.
	StatusFailed FileStatus = "failed"
)

// FileReport holds the outcome of the pass for a single source file.
type FileReport struct {
	Source       Source
	Status       FileStatus
	Replacements int  // literals matched, applied or not
	Cached       bool // result served from the result store
	Output       Path // written file, empty when nothing was written
	Err          error
}
