// Package domain contains the literal replacer pass and the workflow that
// drives it over a source tree.
package domain

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/mouse-blink/litrep/internal/edit"
	"github.com/mouse-blink/litrep/internal/estree"
	m "github.com/mouse-blink/litrep/internal/model"
)

// Host is the build tool the pass runs in.
type Host interface {
	// Parse produces the syntax tree of code.
	Parse(code, id string) (*estree.Node, error)
	// Warn surfaces a non-fatal problem with a file.
	Warn(err error, id string)
}

// Plugin is the literal replacer pass. It is safe for concurrent use: all
// per-file state lives in the call.
type Plugin struct {
	opts Options
}

// NewPlugin creates a plugin; zero option fields take their defaults.
func NewPlugin(opts Options) *Plugin {
	return &Plugin{opts: opts.withDefaults()}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return PluginName
}

// Eligible reports whether the pass runs on id at all. Virtual module ids,
// which contain a NUL byte, never are.
func (p *Plugin) Eligible(id string) bool {
	if strings.IndexByte(id, 0) >= 0 {
		return false
	}

	return p.opts.Filter.Match(id)
}

// Transform runs the pass on one file. It returns nil when the file is not
// eligible, nothing changed, or the pass failed; failures are reported once
// through Report.
func (p *Plugin) Transform(host Host, code, id string) *m.Result {
	res, err := p.Run(host, code, id)
	if err != nil {
		p.Report(host, err, id)
		return nil
	}

	return res
}

// Run is Transform without the reporting: failures come back as a *PassError.
func (p *Plugin) Run(host Host, code, id string) (*m.Result, error) {
	if !p.Eligible(id) {
		return nil, nil
	}

	buf, replacements, err := p.rewrite(host, code, id)
	if err != nil {
		return nil, err
	}

	out := buf.Apply()
	if !out.Changed() {
		return nil, nil
	}

	return &m.Result{
		Code:         out.Code,
		Map:          out.SourceMap(edit.MapOptions{File: path.Base(stripQuery(id)), Source: id}),
		Replacements: replacements,
	}, nil
}

// Scan runs the matching without producing output and returns every literal
// the pass would replace.
func (p *Plugin) Scan(host Host, code, id string) ([]m.Replacement, error) {
	if !p.Eligible(id) {
		return nil, nil
	}

	_, replacements, err := p.rewrite(host, code, id)

	return replacements, err
}

func (p *Plugin) rewrite(host Host, code, id string) (buf *edit.Buffer, replacements []m.Replacement, err error) {
	stage := StageParse

	defer func() {
		if r := recover(); r != nil {
			buf, replacements, err = nil, nil, passError(stage, id, fmt.Errorf("panic: %v", r))
		}
	}()

	tree, err := host.Parse(code, id)
	if err != nil {
		return nil, nil, passError(StageParse, id, err)
	}

	if tree == nil {
		return nil, nil, passError(StageParse, id, errors.New("parser returned no tree"))
	}

	stage = StageTraverse
	buf = edit.NewBuffer(code, p.opts.Offsets)

	cache := NewCache()

	replacements, err = NewReplacer(p.opts.Functions, p.opts.ShouldReplace, p.opts.Transform, cache).Rewrite(tree, buf)
	if err != nil {
		var pe *PassError
		if errors.As(err, &pe) {
			pe.ID = id
			return nil, nil, pe
		}

		return nil, nil, passError(StageTraverse, id, err)
	}

	log.Debugf("%s: %d edits, %d distinct values", id, buf.Len(), cache.Len())

	return buf, replacements, nil
}

// Report surfaces err for id exactly once: through OnError when configured,
// otherwise through the host's warning channel.
func (p *Plugin) Report(host Host, err error, id string) {
	if p.opts.OnError != nil {
		p.opts.OnError(err, id)
		return
	}

	if host != nil {
		host.Warn(err, id)
	}
}
