package domain

import (
	"fmt"
	"slices"

	"github.com/tliron/commonlog"

	"github.com/mouse-blink/litrep/internal/domain/transforms"
	"github.com/mouse-blink/litrep/internal/edit"
)

// PluginName is the name the pass reports under.
const PluginName = "literal-replacer"

// DefaultFunctions are the call names whose literal arguments are rewritten.
var DefaultFunctions = []string{"t", "$t"}

// PredicateFunc decides whether a string literal value is rewritten.
type PredicateFunc func(value string) bool

// TransformFunc computes the replacement for a string literal value.
// It must be pure: results are cached per value.
type TransformFunc func(value string) (string, error)

// ErrorFunc receives failures of the pass for one file.
type ErrorFunc func(err error, id string)

// Preset names a bundle of default policies.
type Preset string

const (
	// PresetChecksum gates by source root and extension, replaces marked
	// messages with their checksum and logs failures.
	PresetChecksum Preset = "checksum"
	// PresetIdentity gates by glob patterns, keeps values unchanged and hands
	// failures to the host's warning channel.
	PresetIdentity Preset = "identity"
)

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetChecksum:
		return PresetChecksum, nil
	case PresetIdentity:
		return PresetIdentity, nil
	}

	return "", fmt.Errorf("unknown preset %q", s)
}

// Options configures a Plugin. Zero fields take their defaults.
type Options struct {
	Functions     []string
	Filter        Filter
	ShouldReplace PredicateFunc
	Transform     TransformFunc
	// OnError receives failures; nil hands them to the host's Warn.
	OnError ErrorFunc
	// Offsets is the unit the parser reports node positions in.
	Offsets edit.Unit
}

// DefaultOptions returns the checksum preset: files under ./src with a known
// extension, N/ and B/ messages replaced by their CRC-32, failures logged.
func DefaultOptions() (Options, error) {
	filter, err := NewRootExtensionFilter(DefaultSourceRoot, DefaultExtensions)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Functions:     slices.Clone(DefaultFunctions),
		Filter:        filter,
		ShouldReplace: transforms.Markers(),
		Transform:     transforms.Checksum,
		OnError:       LogError,
	}, nil
}

// IdentityOptions returns the identity preset over include/exclude globs.
func IdentityOptions(include, exclude []string) (Options, error) {
	filter, err := NewGlobFilter("", include, exclude)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Functions:     slices.Clone(DefaultFunctions),
		Filter:        filter,
		ShouldReplace: transforms.Markers(),
		Transform:     transforms.Identity,
	}, nil
}

// LogError reports a failure through the plugin's logger.
func LogError(err error, id string) {
	commonlog.GetLogger(PluginName).Errorf("[%s] Error in %s: %s", PluginName, id, err.Error())
}

func (o Options) withDefaults() Options {
	if len(o.Functions) == 0 {
		o.Functions = DefaultFunctions
	}

	if o.Filter == nil {
		o.Filter = FilterFunc(func(string) bool { return true })
	}

	if o.ShouldReplace == nil {
		o.ShouldReplace = transforms.Markers()
	}

	if o.Transform == nil {
		o.Transform = transforms.Identity
	}

	return o
}
