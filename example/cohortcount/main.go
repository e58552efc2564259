// Command cohortcount compiles grouped variable definitions from a file and counts how many
// synthetic responses fall into each target instance.
//
//	cohortcount --definitions cohorts.yaml --responses 100000 --workers 8 --multi-valued brands_used
package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("cohortcount failed: %v", err)
	}
}
