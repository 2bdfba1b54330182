package main

import (
	"os"

	"github.com/msto63/listfmt/cmd/listfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
