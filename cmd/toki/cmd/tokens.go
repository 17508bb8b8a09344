package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcfabra/toki"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.tk>",
	Short: "Dump the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		toks, lerr := toki.NewLexer(src).Scan()
		for _, st := range toks {
			fmt.Printf("%s  %s\n", mutedStyle.Render(fmt.Sprintf("%5d", st.Pos)), st.Tok)
		}
		if lerr != nil {
			return toki.Report(lerr, src)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
