// Package cmd provides the root command and CLI setup for litrep.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/mouse-blink/litrep/internal/adapter"
	"github.com/mouse-blink/litrep/internal/config"
	"github.com/mouse-blink/litrep/internal/controller"
	"github.com/mouse-blink/litrep/internal/domain"
	m "github.com/mouse-blink/litrep/internal/model"
)

var cfg *config.Config
var resultStore adapter.ResultStore
var workflow domain.Workflow

var configFlag string
var verboseFlag int
var listFlag bool
var parallelFlag int

// isTTY decides between the interactive and the plain UI; swapped in tests.
var isTTY = controller.IsTTY

const pathsHelp = `
Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./lib    scan multiple directories (non-recursive)

Without paths the directory holding .litrep.toml is scanned recursively.
node_modules, .git and vendor are never entered.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "litrep [paths...]",
		Short: "Replace i18n message literals with checksums",
		Long: `litrep rewrites string literals passed to translation helpers such as
t('N/Save') or $t('B/Title') into short checksums, and writes the result
together with a source map pointing back at the original text.

Files are parsed to ESTree by an external command (see [parser] in
.litrep.toml); only files accepted by the configured preset are touched.
` + pathsHelp,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		RunE: func(_ *cobra.Command, args []string) error {
			paths := parsePaths(args)

			if listFlag {
				return workflow.Estimate(domain.EstimateArgs{Paths: paths})
			}

			transformArgs, err := configTransformArgs(paths)
			if err != nil {
				return err
			}

			if parallelFlag > 0 {
				transformArgs.Threads = parallelFlag
			}

			return workflow.Transform(transformArgs)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to a .litrep.toml file (default: searched upward from the working directory)")
	cmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "increase log verbosity (repeatable)")
	cmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list eligible source files and count of replaceable literals")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 0, "number of parallel workers (default from config)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and, unless one was injected, wires the workflow.
func setup(cmd *cobra.Command, _ []string) error {
	commonlog.Configure(verboseFlag, nil)

	var err error

	cfg, err = loadConfig(configFlag)
	if err != nil {
		return err
	}

	if workflow != nil {
		return nil
	}

	workflow, err = newWorkflow(cmd, cfg)

	return err
}

// teardown closes the result store opened by setup.
func teardown(_ *cobra.Command, _ []string) error {
	if resultStore == nil {
		return nil
	}

	err := resultStore.Close()
	resultStore = nil

	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	c, err := config.FindAndLoad(wd)
	if err != nil || c != nil {
		return c, err
	}

	return config.Default(wd)
}

func newWorkflow(cmd *cobra.Command, c *config.Config) (domain.Workflow, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	parser, err := adapter.NewExecParser(c.Parser.Command, c.Parser.Timeout)
	if errors.Is(err, adapter.ErrNoParser) {
		return nil, fmt.Errorf("%w: set [parser] command in %s or install %s next to the litrep binary",
			err, config.FileName, config.ParserScript)
	}

	if err != nil {
		return nil, err
	}

	if dir := cacheDir(c); dir != "" {
		resultStore, err = adapter.NewBadgerResultStore(dir)
		if err != nil {
			return nil, err
		}
	}

	ui := controller.NewUI(cmd, isTTY(os.Stdout))

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		parser,
		resultStore,
		ui,
		domain.NewPlugin(opts),
		domain.WorkflowOptions{
			Extensions:  c.Extensions(),
			Fingerprint: c.Fingerprint(),
			Root:        m.Path(c.Dir),
		},
	), nil
}

func cacheDir(c *config.Config) string {
	if runCacheFlag != "" {
		return runCacheFlag
	}

	return c.Path(c.Cache.Dir)
}

// configTransformArgs fills transform settings from the loaded config.
func configTransformArgs(paths []m.Path) (domain.TransformArgs, error) {
	if cfg == nil {
		return domain.TransformArgs{}, errors.New("configuration not loaded")
	}

	mode, err := domain.ParseSourceMapMode(cfg.Output.SourceMap)
	if err != nil {
		return domain.TransformArgs{}, err
	}

	return domain.TransformArgs{
		EstimateArgs:   domain.EstimateArgs{Paths: paths},
		OutDir:         m.Path(cfg.Path(cfg.Output.Dir)),
		SourceMap:      mode,
		SourcesContent: cfg.Output.SourcesContent,
		Threads:        cfg.Output.Parallel,
	}, nil
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		if cfg == nil {
			return nil
		}

		return []m.Path{m.Path(cfg.Dir + "/...")}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
