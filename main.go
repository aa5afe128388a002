package main

import (
	"os"

	"github.com/flowtide/firehosegen/cmd"
)

func main() {
	if err := cmd.Main(); err != nil {
		os.Exit(1)
	}
}
