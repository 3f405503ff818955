package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are the file extensions the root filter accepts by default.
var DefaultExtensions = []string{".vue", ".js", ".ts", ".jsx", ".tsx"}

// DefaultSourceRoot is the directory, relative to the working directory, the
// root filter accepts by default.
const DefaultSourceRoot = "src"

// Filter decides whether the pass runs on a file identifier.
type Filter interface {
	Match(id string) bool
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(id string) bool

// Match calls f(id).
func (f FilterFunc) Match(id string) bool {
	return f(id)
}

type rootExtensionFilter struct {
	root       string
	extensions []string
}

// NewRootExtensionFilter accepts identifiers under root whose extension is one
// of extensions. root is resolved to an absolute, slash separated path.
func NewRootExtensionFilter(root string, extensions []string) (Filter, error) {
	if root == "" {
		root = DefaultSourceRoot
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source root %s: %w", root, err)
	}

	return &rootExtensionFilter{
		root:       strings.TrimSuffix(filepath.ToSlash(abs), "/") + "/",
		extensions: slices.Clone(extensions),
	}, nil
}

func (f *rootExtensionFilter) Match(id string) bool {
	if !strings.HasPrefix(id, f.root) {
		return false
	}

	return slices.Contains(f.extensions, path.Ext(stripQuery(id)))
}

type globFilter struct {
	include []string
	exclude []string
}

// NewGlobFilter accepts identifiers matching at least one include pattern and
// no exclude pattern. An empty include list includes everything. Relative
// patterns not starting with ** are resolved against base.
func NewGlobFilter(base string, include, exclude []string) (Filter, error) {
	if base == "" {
		wd, err := filepath.Abs(".")
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}

		base = wd
	}

	base = filepath.ToSlash(base)

	resolve := func(patterns []string) ([]string, error) {
		resolved := make([]string, 0, len(patterns))

		for _, pattern := range patterns {
			pattern = filepath.ToSlash(pattern)
			if !path.IsAbs(pattern) && !strings.HasPrefix(pattern, "**") {
				pattern = path.Join(base, pattern)
			}

			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid glob pattern %q", pattern)
			}

			resolved = append(resolved, pattern)
		}

		return resolved, nil
	}

	inc, err := resolve(include)
	if err != nil {
		return nil, err
	}

	exc, err := resolve(exclude)
	if err != nil {
		return nil, err
	}

	return &globFilter{include: inc, exclude: exc}, nil
}

func (f *globFilter) Match(id string) bool {
	// virtual modules
	if strings.ContainsRune(id, 0) {
		return false
	}

	id = filepath.ToSlash(stripQuery(id))

	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, id) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, pattern := range f.include {
		if doublestar.MatchUnvalidated(pattern, id) {
			return true
		}
	}

	return false
}

// stripQuery drops the "?query" suffix bundlers attach to module ids.
func stripQuery(id string) string {
	if i := strings.IndexByte(id, '?'); i >= 0 {
		return id[:i]
	}

	return id
}
