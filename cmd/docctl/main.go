package main

import (
	"os"

	"github.com/diewo77/doc-designer/cmd/docctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
