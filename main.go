package main

import (
	"os"

	"github.com/jazzmini/jsquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
