package domain

import "fmt"

// Stage names the part of the pass that failed.
type Stage string

const (
	// StageParse means the parser could not produce a tree.
	StageParse Stage = "parse"
	// StageTraverse means the tree broke an invariant the walker relies on,
	// or the pass scheduled an invalid edit.
	StageTraverse Stage = "traverse"
	// StageTransform means a predicate or transform function failed.
	StageTransform Stage = "transform"
)

// PassError is the single error kind the pass reports for a file.
type PassError struct {
	Stage Stage
	ID    string
	Err   error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.ID, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

func passError(stage Stage, id string, err error) *PassError {
	return &PassError{Stage: stage, ID: id, Err: err}
}
