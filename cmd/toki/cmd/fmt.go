package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zcfabra/toki"
)

var fmtCheck bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <file.tk> [file.tk ...]",
	Short: "Rewrite files into normalized form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := 0
		for _, path := range args {
			src, err := readSource(path)
			if err != nil {
				return err
			}
			formatted, perr := toki.Pretty(src)
			if perr != nil {
				return fmt.Errorf("%s: %w", path, toki.Report(perr, src))
			}
			if formatted == src {
				continue
			}
			changed++
			if fmtCheck {
				fmt.Println(path)
				continue
			}
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				return err
			}
		}
		if fmtCheck && changed > 0 {
			return fmt.Errorf("%d file(s) not formatted", changed)
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "list files that would change; exit nonzero if any")
	rootCmd.AddCommand(fmtCmd)
}
