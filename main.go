package main

import (
	"os"

	"github.com/abelgeorge323/MIT-Candidates/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
