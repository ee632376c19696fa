package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/mathseg"
	"github.com/quizsmith/quizsmith/internal/ui/preview"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render text with LaTeX math to the terminal or HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		input, err := readInput(cmd, path)
		if err != nil {
			return err
		}

		asHTML, _ := cmd.Flags().GetBool("html")
		errorColor, _ := cmd.Flags().GetString("error-color")

		frags := mathseg.Render(string(input), mathseg.DelimiterRenderer{}, errorColor)
		if asHTML {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mathseg.HTML(frags, errorColor))
			return err
		}
		_, err = lipgloss.Fprintln(cmd.OutOrStdout(), preview.Terminal(frags))
		return err
	},
}

func init() {
	renderCmd.Flags().Bool("html", false, "Emit an HTML snippet instead of terminal output")
	renderCmd.Flags().String("error-color", mathseg.DefaultErrorColor, "Color for math that failed to render")
}
