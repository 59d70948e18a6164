package main

import (
	"fmt"

	"github.com/dsv-rl/daaf/jobs"
)

// main entry point to the evaluation jobs
func main() {
	// rootCommand defines a command line argument parser (some arguments and a subcommand to run)
	rootCommand := jobs.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
