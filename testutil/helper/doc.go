// Package helper provides observability test doubles: a slog.Handler capturing log records and a
// MetricsCollector capturing metric calls, so tests can assert on what a compilation reported.
package helper
