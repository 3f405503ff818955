// Package config handles .litrep.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"

	"github.com/mouse-blink/litrep/internal/adapter"
	"github.com/mouse-blink/litrep/internal/domain"
	"github.com/mouse-blink/litrep/internal/domain/transforms"
	"github.com/mouse-blink/litrep/internal/edit"
)

// FileName is the configuration file searched for from the working directory up.
const FileName = ".litrep.toml"

// ParserScript is the typescript-estree parser script shipped with litrep.
const ParserScript = "scripts/estree.mjs"

// executable is swapped in tests.
var executable = os.Executable

// Config represents a .litrep.toml project configuration. An explicit empty
// markers list accepts every string literal.
type Config struct {
	Preset    string   `toml:"preset"`
	Functions []string `toml:"functions"`
	Markers   []string `toml:"markers"`
	Offsets   string   `toml:"offsets"`

	Parser Parser `toml:"parser"`
	Files  Files  `toml:"files"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`

	// Dir is the directory relative paths resolve against (set at load time).
	Dir string `toml:"-"`
}

// Parser configures the external ESTree parser.
type Parser struct {
	Command string        `toml:"command"`
	Timeout time.Duration `toml:"timeout"`
}

// Files selects the files the pass runs on.
type Files struct {
	// Root and Extensions drive the checksum preset's filter.
	Root       string   `toml:"root"`
	Extensions []string `toml:"extensions"`
	// Include and Exclude are glob patterns for the identity preset.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Output configures `litrep run`.
type Output struct {
	Dir            string `toml:"dir"`
	SourceMap      string `toml:"sourcemap"`
	SourcesContent bool   `toml:"sources-content"`
	Parallel       int    `toml:"parallel"`
}

// Cache configures the persistent result store. An empty Dir disables it.
type Cache struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is found.
func Default(dir string) (*Config, error) {
	c := &Config{}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	c.Dir = abs
	c.defaults()

	return c, nil
}

// Load parses the .litrep.toml file in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses a configuration file. Relative paths in it resolve against
// the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config

	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// an explicit empty list accepts every string literal
	if md.IsDefined("markers") && c.Markers == nil {
		c.Markers = []string{}
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	c.defaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &c, nil
}

// FindAndLoad walks up from startDir to find a .litrep.toml file, then loads
// and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}

		dir = parent
	}
}

func (c *Config) defaults() {
	if c.Preset == "" {
		c.Preset = string(domain.PresetChecksum)
	}

	if len(c.Functions) == 0 {
		c.Functions = slices.Clone(domain.DefaultFunctions)
	}

	if c.Markers == nil {
		c.Markers = slices.Clone(transforms.DefaultMarkers)
	}

	if c.Parser.Command == "" {
		c.Parser.Command = DefaultParserCommand(c.Dir)
	}

	if c.Parser.Timeout <= 0 {
		c.Parser.Timeout = adapter.DefaultParserTimeout
	}

	if c.Files.Root == "" {
		c.Files.Root = domain.DefaultSourceRoot
	}

	if len(c.Files.Extensions) == 0 {
		c.Files.Extensions = slices.Clone(domain.DefaultExtensions)
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "dist"
	}

	if c.Output.SourceMap == "" {
		c.Output.SourceMap = string(domain.SourceMapFile)
	}

	if c.Output.Parallel <= 0 {
		c.Output.Parallel = 1
	}
}

// DefaultParserCommand runs ParserScript with node when the script exists in
// dir or next to the litrep executable (or one level above it, for a bin/
// layout). It returns an empty command when the script is nowhere to be found.
func DefaultParserCommand(dir string) string {
	bases := []string{dir}

	if exe, err := executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}

		bases = append(bases, filepath.Dir(exe), filepath.Dir(filepath.Dir(exe)))
	}

	for _, base := range bases {
		if base == "" {
			continue
		}

		script := filepath.Join(base, filepath.FromSlash(ParserScript))
		if info, err := os.Stat(script); err == nil && !info.IsDir() {
			return "node " + quote(script) + " " + adapter.IDPlaceholder
		}
	}

	return ""
}

// quote wraps s in double quotes for shell-style splitting.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := domain.ParsePreset(c.Preset); err != nil {
		return err
	}

	if _, err := edit.ParseUnit(c.Offsets); err != nil {
		return err
	}

	if _, err := domain.ParseSourceMapMode(c.Output.SourceMap); err != nil {
		return err
	}

	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}

// Options builds the plugin options the configuration describes.
func (c *Config) Options() (domain.Options, error) {
	preset, err := domain.ParsePreset(c.Preset)
	if err != nil {
		return domain.Options{}, err
	}

	unit, err := edit.ParseUnit(c.Offsets)
	if err != nil {
		return domain.Options{}, err
	}

	var opts domain.Options

	switch preset {
	case domain.PresetIdentity:
		opts = domain.Options{Transform: transforms.Identity}
		opts.Filter, err = domain.NewGlobFilter(c.Dir, c.Files.Include, c.Files.Exclude)
	default:
		opts = domain.Options{Transform: transforms.Checksum, OnError: domain.LogError}
		opts.Filter, err = domain.NewRootExtensionFilter(c.Path(c.Files.Root), c.Files.Extensions)
	}

	if err != nil {
		return domain.Options{}, err
	}

	opts.Functions = slices.Clone(c.Functions)
	opts.ShouldReplace = transforms.Any
	if len(c.Markers) > 0 {
		opts.ShouldReplace = transforms.Markers(c.Markers...)
	}

	opts.Offsets = unit

	return opts, nil
}

// Extensions returns the file extensions the workflow collects candidates by.
// The identity preset selects files with its include and exclude globs only,
// so it returns nil.
func (c *Config) Extensions() []string {
	if c.Preset == string(domain.PresetIdentity) {
		return nil
	}

	return c.Files.Extensions
}

// Fingerprint identifies every setting that changes the pass output. It
// prefixes result store keys so a changed config never reuses stale results.
func (c *Config) Fingerprint() string {
	data, err := json.Marshal(struct {
		Preset    string   `json:"preset"`
		Functions []string `json:"functions"`
		Markers   []string `json:"markers"`
		Offsets   string   `json:"offsets"`
		Parser    string   `json:"parser"`
	}{
		Preset:    c.Preset,
		Functions: c.Functions,
		Markers:   c.Markers,
		Offsets:   c.Offsets,
		Parser:    c.Parser.Command,
	})
	if err != nil {
		return c.Preset
	}

	return string(data)
}

// Path resolves p against the config directory.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir, p)
}
