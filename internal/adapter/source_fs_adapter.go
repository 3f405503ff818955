// Package adapter contains infrastructure adapters for the litrep CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	m "github.com/mouse-blink/litrep/internal/model"
)

// SkippedDirs are directory names never descended into.
var SkippedDirs = []string{"node_modules", ".git", "vendor"}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects candidate files under roots. Roots ending in /... are
	// scanned recursively. With a non-empty extensions list only files with
	// one of those extensions are returned.
	Get(roots []m.Path, extensions []string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file, creating parent directories.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects source files for the provided roots, deduplicated, in walk order.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, extensions []string) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	add := func(path string) error {
		source, ok, err := sourceFor(path, extensions)
		if err != nil || !ok {
			return err
		}

		if _, exists := seen[source.ID]; exists {
			return nil
		}

		seen[source.ID] = struct{}{}
		sources = append(sources, source)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into
// subdirectories. SkippedDirs are never entered.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || slices.Contains(SkippedDirs, info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to path, creating missing parent directories.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

func sourceFor(path string, extensions []string) (m.Source, bool, error) {
	if len(extensions) > 0 && !slices.Contains(extensions, filepath.Ext(path)) {
		return m.Source{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, false, err
	}

	return m.Source{Origin: m.Path(absPath), ID: filepath.ToSlash(absPath)}, true, nil
}
