package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/definitionfile"
	"github.com/AntonStoeckl/survey-variables-go/variables/grouped"
)

func newRootCommand(out io.Writer) *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "cohortcount",
		Short: "Count synthetic survey responses per grouped variable instance",
		Long: `cohortcount compiles every grouped variable definition of a file into its fastest
evaluable form and counts how many generated responses are members of each instance.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			return run(cmd, cfg, out)
		},
	}

	bindFlags(cmd, &cfg)

	return cmd
}

func run(cmd *cobra.Command, cfg Config, out io.Writer) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel()}))
	logger.Info("starting", "config", cfg.String())

	definitions, err := definitionfile.Load(cfg.DefinitionsPath)
	if err != nil {
		return err
	}

	buildID, err := uuid.NewV7()
	if err != nil {
		return err
	}

	options := []variables.Option{variables.WithLogger(logger), variables.WithBuildID(buildID.String())}
	if cfg.CombinationLimit > 0 {
		options = append(options, variables.WithCombinationLimit(cfg.CombinationLimit))
	}

	var metrics *compileMetrics
	if cfg.Metrics {
		metrics = newCompileMetrics()
		defer metrics.shutdown(cmd.Context())
		options = append(options, variables.WithMetrics(metrics.collector))
	}

	universe := newUniverse(definitions, cfg.InstancesPerType, cfg.MultiValued)
	responses := universe.generator(cfg.Seed).responses(cfg.Responses)

	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(table, "ENTITY TYPE\tPATH\tINSTANCE\tNAME\tRESPONSES")

	for _, definition := range definitions {
		variable, err := grouped.New(definition, universe.dependencies(), options...)
		if err != nil {
			logger.Error("skipping definition", "entity_type", definition.ToEntityTypeName, "error", err)
			continue
		}

		counts, err := countMembers(cmd.Context(), variable, responses, cfg.Workers)
		if err != nil {
			return err
		}

		path := grouped.PathOf(variable)
		for _, instance := range definition.TargetInstances() {
			_, _ = fmt.Fprintf(table, "%s\t%s\t%d\t%s\t%d\n",
				definition.ToEntityTypeName, path, instance.ID, instance.Name, counts[instance.ID])
		}
	}

	if err := table.Flush(); err != nil {
		return err
	}

	if metrics != nil {
		return metrics.print(cmd.Context(), out)
	}

	return nil
}
