package domain

import (
	"strings"

	"github.com/mouse-blink/litrep/internal/edit"
	"github.com/mouse-blink/litrep/internal/estree"
	m "github.com/mouse-blink/litrep/internal/model"
)

// Replacer finds literal arguments of target calls and schedules their rewrite.
type Replacer struct {
	functions map[string]struct{}
	accept    PredicateFunc
	transform TransformFunc
	cache     *Cache
}

// NewReplacer creates a replacer bound to one cache.
func NewReplacer(functions []string, accept PredicateFunc, transform TransformFunc, cache *Cache) *Replacer {
	set := make(map[string]struct{}, len(functions))
	for _, fn := range functions {
		set[fn] = struct{}{}
	}

	return &Replacer{
		functions: set,
		accept:    accept,
		transform: transform,
		cache:     cache,
	}
}

// Rewrite walks root and schedules an overwrite in buf for every accepted
// string literal passed to a target function. It returns every matched
// literal, applied or not. Errors carry the stage that failed.
func (r *Replacer) Rewrite(root *estree.Node, buf *edit.Buffer) ([]m.Replacement, error) {
	var replacements []m.Replacement

	for site, err := range estree.CallSites(root) {
		if err != nil {
			return nil, &PassError{Stage: StageTraverse, Err: err}
		}

		if _, ok := r.functions[site.Name]; !ok {
			continue
		}

		for _, arg := range site.Arguments {
			rep, ok, err := r.rewriteArgument(site.Name, arg, buf)
			if err != nil {
				return nil, err
			}

			if ok {
				replacements = append(replacements, rep)
			}
		}
	}

	return replacements, nil
}

func (r *Replacer) rewriteArgument(name string, arg *estree.Node, buf *edit.Buffer) (m.Replacement, bool, error) {
	value, ok := arg.StringValue()
	if !ok {
		return m.Replacement{}, false, nil
	}

	accepted, err := callPredicate(r.accept, value)
	if err != nil {
		return m.Replacement{}, false, &PassError{Stage: StageTransform, Err: err}
	}

	if !accepted {
		return m.Replacement{}, false, nil
	}

	replaced, err := r.cache.Resolve(value, r.transform)
	if err != nil {
		return m.Replacement{}, false, &PassError{Stage: StageTransform, Err: err}
	}

	rep := m.Replacement{Function: name, Original: value, Value: replaced}

	// foreign nodes without positions keep the cache warm but are not edited
	if arg.Span == nil {
		return rep, true, nil
	}

	rep.Start, rep.End = arg.Span.Start, arg.Span.End

	if err := buf.Overwrite(arg.Span.Start, arg.Span.End, quote(replaced)); err != nil {
		return m.Replacement{}, false, &PassError{Stage: StageTraverse, Err: err}
	}

	rep.Applied = true

	return rep, true, nil
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// quote wraps s in single quotes as a JavaScript string literal.
func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
