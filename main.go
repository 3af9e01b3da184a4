package main

import (
	"os"

	"github.com/learnbuddy/learnbuddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
