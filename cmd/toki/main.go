package main

import (
	"os"

	"github.com/zcfabra/toki/cmd/toki/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
