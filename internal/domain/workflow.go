package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/litrep/internal/adapter"
	"github.com/mouse-blink/litrep/internal/controller"
	"github.com/mouse-blink/litrep/internal/estree"
	m "github.com/mouse-blink/litrep/internal/model"
)

var log = commonlog.GetLogger("litrep.workflow")

// SourceMapMode selects how a run emits source maps.
type SourceMapMode string

const (
	// SourceMapFile writes a .map file next to each changed output.
	SourceMapFile SourceMapMode = "file"
	// SourceMapInline appends the map as a data URL comment.
	SourceMapInline SourceMapMode = "inline"
	// SourceMapNone emits no maps.
	SourceMapNone SourceMapMode = "none"
)

// ParseSourceMapMode validates a source map mode name.
func ParseSourceMapMode(s string) (SourceMapMode, error) {
	switch mode := SourceMapMode(s); mode {
	case SourceMapFile, SourceMapInline, SourceMapNone:
		return mode, nil
	case "":
		return SourceMapFile, nil
	}

	return "", fmt.Errorf("unknown source map mode %q (want file, inline or none)", s)
}

// scriptExtensions are outputs that can carry a sourceMappingURL comment.
var scriptExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// EstimateArgs selects the files a command works on.
type EstimateArgs struct {
	Paths []m.Path
}

// TransformArgs configures a run that writes output files.
type TransformArgs struct {
	EstimateArgs
	OutDir         m.Path
	SourceMap      SourceMapMode
	SourcesContent bool
	Threads        int
}

// DiffArgs configures a dry run printing unified diffs.
type DiffArgs struct {
	EstimateArgs
	// Context is the number of unchanged lines around each hunk; negative means 3.
	Context int
	Threads int
}

// Workflow defines the operations of the CLI.
type Workflow interface {
	Estimate(args EstimateArgs) error
	Transform(args TransformArgs) error
	Diff(args DiffArgs) error
}

// WorkflowOptions carries the settings the workflow needs besides the plugin.
type WorkflowOptions struct {
	// Extensions limits candidate files; empty means every file.
	Extensions []string
	// Fingerprint identifies the plugin options in result store keys.
	Fingerprint string
	// Root is the directory output paths are made relative to.
	Root m.Path
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	parser    adapter.Parser
	store     adapter.ResultStore
	ui        controller.UI
	plugin    *Plugin
	opts      WorkflowOptions
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	parser adapter.Parser,
	store adapter.ResultStore,
	ui controller.UI,
	plugin *Plugin,
	opts WorkflowOptions,
) Workflow {
	if store == nil {
		store = adapter.NopResultStore{}
	}

	if opts.Root == "" {
		opts.Root = "."
	}

	return &workflow{
		fsAdapter: fsAdapter,
		parser:    parser,
		store:     store,
		ui:        ui,
		plugin:    plugin,
		opts:      opts,
	}
}

// fileHost plays the build tool for the plugin: parsing through the
// configured parser, warnings through the UI.
type fileHost struct {
	parser adapter.Parser
	ui     controller.UI
}

func (h fileHost) Parse(code, id string) (*estree.Node, error) {
	return h.parser.Parse(code, id)
}

func (h fileHost) Warn(err error, id string) {
	h.ui.DisplayWarning(PluginName, id, err)
}

// Estimate lists eligible files with the number of literals the pass would replace.
func (w *workflow) Estimate(args EstimateArgs) error {
	sources, err := w.sources(args.Paths, "")
	if err != nil {
		return w.ui.DisplayEstimation(nil, err)
	}

	host := w.host()
	reports := make([]m.FileReport, 0, len(sources))

	for _, source := range sources {
		content, err := w.fsAdapter.ReadFile(source.Origin)
		if err != nil {
			return w.ui.DisplayEstimation(nil, fmt.Errorf("read %s: %w", source.Origin, err))
		}

		report := m.FileReport{Source: w.display(source), Status: m.StatusUnchanged}

		replacements, err := w.plugin.Scan(host, string(content), source.ID)
		if err != nil {
			w.plugin.Report(host, err, source.ID)

			report.Status = m.StatusFailed
			report.Err = err
		} else {
			report.Replacements = len(replacements)
			if report.Replacements > 0 {
				report.Status = m.StatusChanged
			}
		}

		reports = append(reports, report)
	}

	return w.ui.DisplayEstimation(reports, nil)
}

// Transform runs the pass over every eligible file and writes the results
// under args.OutDir. Unchanged and failed files are copied verbatim.
func (w *workflow) Transform(args TransformArgs) error {
	if args.OutDir == "" {
		args.OutDir = "dist"
	}

	if args.SourceMap == "" {
		args.SourceMap = SourceMapFile
	}

	outDir, err := filepath.Abs(string(args.OutDir))
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	sources, err := w.sources(args.Paths, outDir)
	if err != nil {
		return err
	}

	reports := make([]m.FileReport, len(sources))

	progress, tracked := w.ui.(controller.Progress)
	tracked = tracked && len(sources) > 0

	if tracked {
		progress.DisplayStart(len(sources), max(args.Threads, 1))
	}

	err = w.each(sources, args.Threads, func(i int, source m.Source) error {
		done, err := w.process(source, true)
		if err != nil {
			return err
		}

		outPath, err := w.outputPath(source, outDir)
		if err != nil {
			return err
		}

		if err := w.write(outPath, source, done, args); err != nil {
			return err
		}

		done.report.Output = w.display(m.Source{Origin: outPath}).Origin
		reports[i] = done.report

		if tracked {
			progress.DisplayProgress(done.report)
		}

		return nil
	})
	if err != nil {
		if tracked {
			progress.DisplayAbort(err)
		}

		return err
	}

	return w.ui.DisplayTransform(reports)
}

// Diff prints a unified diff for every file the pass changes.
func (w *workflow) Diff(args DiffArgs) error {
	if args.Context < 0 {
		args.Context = 3
	}

	sources, err := w.sources(args.Paths, "")
	if err != nil {
		return err
	}

	diffs := make([]string, len(sources))

	err = w.each(sources, args.Threads, func(i int, source m.Source) error {
		done, err := w.process(source, false)
		if err != nil || !done.result.Changed() {
			return err
		}

		name := string(w.display(source).Origin)

		diffs[i], err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(done.code),
			B:        difflib.SplitLines(done.result.Code),
			FromFile: name,
			ToFile:   name,
			Context:  args.Context,
		})

		return err
	})
	if err != nil {
		return err
	}

	for i, diff := range diffs {
		if diff != "" {
			w.ui.DisplayDiff(w.display(sources[i]).Origin, diff)
		}
	}

	return nil
}

type outcome struct {
	code   string
	result *m.Result
	report m.FileReport
}

// process runs the pass on one file, consulting the result store when useStore is set.
func (w *workflow) process(source m.Source, useStore bool) (outcome, error) {
	content, err := w.fsAdapter.ReadFile(source.Origin)
	if err != nil {
		return outcome{}, fmt.Errorf("read %s: %w", source.Origin, err)
	}

	code := string(content)
	out := outcome{code: code, report: m.FileReport{Source: w.display(source)}}

	key := adapter.ResultKey(w.opts.Fingerprint, source.ID, code)

	if useStore {
		res, found, err := w.store.Load(key)
		if err != nil {
			log.Warningf("result store: %s", err.Error())
		} else if found {
			log.Debugf("cached %s", source.ID)

			out.result = res
			out.report.Cached = true
			out.report.Status = statusOf(res)
			out.report.Replacements = countOf(res)

			return out, nil
		}
	}

	log.Debugf("transform %s", source.ID)

	host := w.host()

	res, err := w.plugin.Run(host, code, source.ID)
	if err != nil {
		w.plugin.Report(host, err, source.ID)

		out.report.Status = m.StatusFailed
		out.report.Err = err

		return out, nil
	}

	out.result = res
	out.report.Status = statusOf(res)
	out.report.Replacements = countOf(res)

	if useStore {
		if err := w.store.Save(key, res); err != nil {
			log.Warningf("result store: %s", err.Error())
		}
	}

	return out, nil
}

func (w *workflow) write(outPath m.Path, source m.Source, out outcome, args TransformArgs) error {
	if !out.result.Changed() {
		if err := w.fsAdapter.WriteFile(outPath, []byte(out.code), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		return nil
	}

	code := out.result.Code
	script := slices.Contains(scriptExtensions, filepath.Ext(string(outPath)))

	if args.SourceMap != SourceMapNone && out.result.Map != nil {
		sm := *out.result.Map
		sm.File = filepath.Base(string(outPath))

		if rel, err := filepath.Rel(filepath.Dir(string(outPath)), string(source.Origin)); err == nil {
			sm.Sources = []string{filepath.ToSlash(rel)}
		}

		if args.SourcesContent {
			sm.SourcesContent = []string{out.code}
		}

		switch {
		case args.SourceMap == SourceMapInline && script:
			code += "\n//# sourceMappingURL=" + sm.URL() + "\n"
		default:
			mapPath := m.Path(string(outPath) + ".map")
			if err := w.fsAdapter.WriteFile(mapPath, []byte(sm.String()), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", mapPath, err)
			}

			if script {
				code += "\n//# sourceMappingURL=" + filepath.Base(string(mapPath)) + "\n"
			}
		}
	}

	if err := w.fsAdapter.WriteFile(outPath, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	return nil
}

// outputPath mirrors source under outDir, relative to the workflow root.
func (w *workflow) outputPath(source m.Source, outDir string) (m.Path, error) {
	root, err := filepath.Abs(string(w.opts.Root))
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	rel, err := filepath.Rel(root, string(source.Origin))
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = strings.TrimPrefix(string(source.Origin), filepath.VolumeName(string(source.Origin)))
	}

	return m.Path(filepath.Join(outDir, rel)), nil
}

// sources collects eligible candidates, skipping anything under exclude.
func (w *workflow) sources(paths []m.Path, exclude string) ([]m.Source, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	candidates, err := w.fsAdapter.Get(paths, w.opts.Extensions)
	if err != nil {
		return nil, err
	}

	sources := make([]m.Source, 0, len(candidates))

	for _, source := range candidates {
		if exclude != "" && strings.HasPrefix(string(source.Origin), exclude+string(filepath.Separator)) {
			continue
		}

		if !w.plugin.Eligible(source.ID) {
			log.Debugf("skip %s", source.ID)
			continue
		}

		sources = append(sources, source)
	}

	return sources, nil
}

// each runs fn over sources on at most threads goroutines and stops
// scheduling new files after the first error.
func (w *workflow) each(sources []m.Source, threads int, fn func(int, m.Source) error) error {
	if threads <= 0 {
		threads = 1
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(threads)

	for i, source := range sources {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			return fn(i, source)
		})
	}

	return g.Wait()
}

// display rewrites source paths relative to the root for output.
func (w *workflow) display(source m.Source) m.Source {
	root, err := filepath.Abs(string(w.opts.Root))
	if err != nil {
		return source
	}

	rel, err := filepath.Rel(root, string(source.Origin))
	if err != nil || strings.HasPrefix(rel, "..") {
		return source
	}

	source.Origin = m.Path(rel)

	return source
}

func (w *workflow) host() fileHost {
	return fileHost{parser: w.parser, ui: w.ui}
}

func statusOf(res *m.Result) m.FileStatus {
	if res.Changed() {
		return m.StatusChanged
	}

	return m.StatusUnchanged
}

func countOf(res *m.Result) int {
	if res == nil {
		return 0
	}

	return len(res.Replacements)
}
