package main

import (
	"os"

	"ignscript/cmd/igs/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
