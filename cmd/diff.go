package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/litrep/internal/domain"
)

var diffContextFlag int
var diffParallelFlag int

const diffLongDescription = `Print a unified diff of every file the pass would change, without writing
anything. Useful to review which literals a configuration catches.
` + pathsHelp

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Show the changes the pass would make",
		Long:  diffLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Diff(domain.DiffArgs{
				EstimateArgs: domain.EstimateArgs{Paths: parsePaths(args)},
				Context:      diffContextFlag,
				Threads:      diffParallelFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&diffContextFlag, "context", "U", 3, "number of context lines")
	cmd.Flags().IntVarP(&diffParallelFlag, "parallel", "p", 1, "number of parallel workers")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
