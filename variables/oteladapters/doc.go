// Package oteladapters connects the variables.Logger and variables.MetricsCollector interfaces to OpenTelemetry.
//
// Compilation reports through these adapters like through any other implementation:
//
//	meter := otel.GetMeterProvider().Meter("survey-variables")
//	variable, err := grouped.New(
//		definition,
//		dependencies,
//		variables.WithLogger(oteladapters.NewSlogBridgeLogger("survey-variables")),
//		variables.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//	)
package oteladapters
