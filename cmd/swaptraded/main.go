package main

import (
	"os"

	"github.com/swaptrade/swaptrade/cmd/swaptraded/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
