package main

import (
	"os"

	"github.com/gridops/switchsched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
