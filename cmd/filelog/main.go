package main

import (
	"os"

	"github.com/sivaosorg/filelog/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
