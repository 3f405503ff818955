// Package model defines the data structures shared by the literal replacer.
package model

// Path represents a file system path.
type Path string

// Source represents a candidate source file found while scanning roots.
type Source struct {
	// Origin is the absolute path of the file on disk.
	Origin Path
	// ID is the identifier handed to the pass (forward slashes, absolute).
	ID string
}
