package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcfabra/toki"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.tk>",
	Short: "Parse a file and print its normalized rendering",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		block, perr := toki.Parse(src)
		if perr != nil {
			return toki.Report(perr, src)
		}
		fmt.Print(toki.Render(block))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
