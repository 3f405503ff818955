package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/litrep/internal/domain"
)

const listLongDescription = `List the eligible source files under the given paths with the number of
string literals the pass would replace in each. Nothing is written.
` + pathsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and replaceable literal counts",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Estimate(domain.EstimateArgs{Paths: parsePaths(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
