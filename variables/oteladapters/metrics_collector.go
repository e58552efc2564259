package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

const (
	descriptionDuration = "Survey variable compilation duration"
	descriptionCounter  = "Survey variable compilation counter"
	descriptionValue    = "Survey variable compilation value"
)

// MetricsCollector implements variables.MetricsCollector using the OpenTelemetry metrics API:
//   - RecordDuration -> Float64Histogram in seconds
//   - IncrementCounter -> Int64Counter
//   - RecordValue -> Float64Gauge
//
// Instruments are created on first use and cached. It is safe for concurrent use.
type MetricsCollector struct {
	meter metric.Meter

	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a collector creating its instruments with meter.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	histogram, err := instrument(m, m.histograms, metricName, func() (metric.Float64Histogram, error) {
		return m.meter.Float64Histogram(metricName, metric.WithDescription(descriptionDuration), metric.WithUnit("s"))
	})
	if err != nil {
		return
	}

	histogram.Record(context.Background(), duration.Seconds(), metric.WithAttributes(attributesOf(labels)...))
}

func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	counter, err := instrument(m, m.counters, metricName, func() (metric.Int64Counter, error) {
		return m.meter.Int64Counter(metricName, metric.WithDescription(descriptionCounter))
	})
	if err != nil {
		return
	}

	counter.Add(context.Background(), 1, metric.WithAttributes(attributesOf(labels)...))
}

func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	gauge, err := instrument(m, m.gauges, metricName, func() (metric.Float64Gauge, error) {
		return m.meter.Float64Gauge(metricName, metric.WithDescription(descriptionValue))
	})
	if err != nil {
		return
	}

	gauge.Record(context.Background(), value, metric.WithAttributes(attributesOf(labels)...))
}

// instrument returns the cached instrument for name, creating it on first use.
func instrument[I any](m *MetricsCollector, cache map[string]I, name string, create func() (I, error)) (I, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := cache[name]; ok {
		return cached, nil
	}

	created, err := create()
	if err != nil {
		return created, err
	}
	cache[name] = created

	return created, nil
}

func attributesOf(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

var _ variables.MetricsCollector = (*MetricsCollector)(nil)
