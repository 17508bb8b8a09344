package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcfabra/toki"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compiled version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toki %s (built %s)\n", toki.Version, toki.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
