package main

import (
	"os"

	"github.com/Bloodwingv2/gamecrawl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrorf("Error: %v", err)
		os.Exit(1)
	}
}
