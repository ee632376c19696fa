package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/mathseg"
	"github.com/quizsmith/quizsmith/internal/ui/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Live LaTeX preview in the terminal",
	Long: `Open an editor that re-renders its text on every change.

Use $...$ for inline math and $$...$$ for display math. A file seeds the
editor with its contents.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var seed string
		if len(args) == 1 {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			seed = string(data)
		}
		return preview.Run(seed, mathseg.DelimiterRenderer{})
	},
}
