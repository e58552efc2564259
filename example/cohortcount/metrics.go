package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/survey-variables-go/variables/oteladapters"
)

// compileMetrics collects the compilation metrics in memory until they are printed.
type compileMetrics struct {
	reader    *sdkmetric.ManualReader
	provider  *sdkmetric.MeterProvider
	collector *oteladapters.MetricsCollector
}

func newCompileMetrics() *compileMetrics {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return &compileMetrics{
		reader:    reader,
		provider:  provider,
		collector: oteladapters.NewMetricsCollector(provider.Meter("cohortcount")),
	}
}

func (m *compileMetrics) print(ctx context.Context, out io.Writer) error {
	var resourceMetrics metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &resourceMetrics); err != nil {
		return err
	}

	var rows []string
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			rows = append(rows, metricRows(metric)...)
		}
	}
	slices.Sort(rows)

	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(table, "\nMETRIC\tATTRIBUTES\tVALUE")
	for _, row := range rows {
		_, _ = fmt.Fprintln(table, row)
	}

	return table.Flush()
}

func (m *compileMetrics) shutdown(ctx context.Context) {
	_ = m.provider.Shutdown(ctx)
}

func metricRows(metric metricdata.Metrics) []string {
	var rows []string

	switch data := metric.Data.(type) {
	case metricdata.Histogram[float64]:
		for _, dataPoint := range data.DataPoints {
			rows = append(rows, fmt.Sprintf("%s\t%s\tcount=%d sum=%.6f",
				metric.Name, encoded(dataPoint.Attributes), dataPoint.Count, dataPoint.Sum))
		}
	case metricdata.Sum[int64]:
		for _, dataPoint := range data.DataPoints {
			rows = append(rows, fmt.Sprintf("%s\t%s\t%d", metric.Name, encoded(dataPoint.Attributes), dataPoint.Value))
		}
	case metricdata.Gauge[float64]:
		for _, dataPoint := range data.DataPoints {
			rows = append(rows, fmt.Sprintf("%s\t%s\t%g", metric.Name, encoded(dataPoint.Attributes), dataPoint.Value))
		}
	}

	return rows
}

func encoded(attrs attribute.Set) string {
	return attrs.Encoded(attribute.DefaultEncoder())
}
