package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zcfabra/toki"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "toki",
	Short: "Toki language front end",
	Long: `toki parses, formats and inspects Toki (.tk) source files.

Commands:
  parse    Parse a file and print its normalized rendering
  fmt      Rewrite files into normalized form
  tokens   Dump the token stream of a file
  repl     Start an interactive session
  version  Print the compiled version`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		toki.EnableColor = !noColor
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in diagnostics")
}

func readSource(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(src), nil
}
