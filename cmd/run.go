package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/litrep/internal/domain"
	m "github.com/mouse-blink/litrep/internal/model"
)

var runOutFlag string
var runSourceMapFlag string
var runSourcesContentFlag bool
var runParallelFlag int
var runCacheFlag string

const runLongDescription = `Run the literal replacer over the given paths and write every eligible
file under the output directory, mirroring the project layout.

Changed files get a source map: a .map file with a sourceMappingURL comment
(--sourcemap file), a data URL comment (--sourcemap inline) or nothing
(--sourcemap none). Unchanged files and files the pass failed on are copied
verbatim; failures are reported as warnings and do not stop the run.

With --cache DIR results are kept in a badger database keyed by file content
and configuration, so unchanged files are not parsed again.
` + pathsHelp

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Replace literals and write output files",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			transformArgs, err := configTransformArgs(parsePaths(args))
			if err != nil {
				return err
			}

			flags := cmd.Flags()

			if flags.Changed("out") {
				transformArgs.OutDir = m.Path(runOutFlag)
			}

			if flags.Changed("sourcemap") {
				transformArgs.SourceMap, err = domain.ParseSourceMapMode(runSourceMapFlag)
				if err != nil {
					return err
				}
			}

			if flags.Changed("sources-content") {
				transformArgs.SourcesContent = runSourcesContentFlag
			}

			if flags.Changed("parallel") {
				transformArgs.Threads = runParallelFlag
			}

			return workflow.Transform(transformArgs)
		},
	}
	cmd.Flags().StringVarP(&runOutFlag, "out", "o", "dist", "output directory")
	cmd.Flags().StringVar(&runSourceMapFlag, "sourcemap", "file", "source map mode: file, inline or none")
	cmd.Flags().BoolVar(&runSourcesContentFlag, "sources-content", false, "embed original sources in source maps")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().StringVar(&runCacheFlag, "cache", "", "directory of the persistent result cache")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
