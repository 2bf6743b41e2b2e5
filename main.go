package main

import (
	"os"

	"github.com/spigell/nextstep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
