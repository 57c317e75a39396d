package main

import (
	"os"

	"github.com/rustyeddy/gbce/cmd/gbce/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
