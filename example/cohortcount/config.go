package main

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	DefaultResponseCount      = 10_000
	DefaultInstancesPerType   = 5
	DefaultSeed               = 1
	flagDefinitions           = "definitions"
	flagResponses             = "responses"
	flagWorkers               = "workers"
	flagSeed                  = "seed"
	flagInstancesPerType      = "instances-per-type"
	flagMultiValued           = "multi-valued"
	flagCombinationLimit      = "combination-limit"
	flagVerbose               = "verbose"
	flagMetrics               = "metrics"
	errMsgInvalidWorkerCount  = "workers must be at least 1"
	errMsgInvalidResponseSize = "responses must not be negative"
)

// Config holds the command-line configuration.
type Config struct {
	DefinitionsPath  string
	Responses        int
	Workers          int
	Seed             uint64
	InstancesPerType int
	MultiValued      []string
	CombinationLimit int
	Verbose          bool
	Metrics          bool
}

func bindFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	flags.StringVarP(&cfg.DefinitionsPath, flagDefinitions, "d", "", "JSON or YAML file with grouped variable definitions")
	flags.IntVarP(&cfg.Responses, flagResponses, "n", DefaultResponseCount, "Number of synthetic responses to evaluate")
	flags.IntVarP(&cfg.Workers, flagWorkers, "w", runtime.NumCPU(), "Number of concurrent workers, each with its own evaluator")
	flags.Uint64Var(&cfg.Seed, flagSeed, DefaultSeed, "Seed of the synthetic response generator")
	flags.IntVar(&cfg.InstancesPerType, flagInstancesPerType, DefaultInstancesPerType, "Instances per answer entity type besides the ones the definitions list")
	flags.StringSliceVar(&cfg.MultiValued, flagMultiValued, nil, "Fields that accept several answers")
	flags.IntVar(&cfg.CombinationLimit, flagCombinationLimit, 0, "Lookup table limit of the instance list optimization, 0 keeps the default")
	flags.BoolVarP(&cfg.Verbose, flagVerbose, "v", false, "Log compilation details at debug level")
	flags.BoolVar(&cfg.Metrics, flagMetrics, false, "Print the compilation metrics after the counts")

	_ = cmd.MarkFlagRequired(flagDefinitions)
}

func (c Config) validate() error {
	if c.Workers < 1 {
		return errors.New(errMsgInvalidWorkerCount)
	}

	if c.Responses < 0 {
		return errors.New(errMsgInvalidResponseSize)
	}

	return nil
}

func (c Config) logLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func (c Config) String() string {
	return fmt.Sprintf(
		"definitions=%s responses=%d workers=%d seed=%d",
		c.DefinitionsPath, c.Responses, c.Workers, c.Seed,
	)
}
