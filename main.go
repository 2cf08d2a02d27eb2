package main

import (
	"os"

	"github.com/getlawrence/nodediff/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
