package main

import (
	"os"

	"github.com/lexigraph/etymograph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
