package variables

import "time"

// Logger interface for compilation diagnostics, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting compilation metrics.
// Evaluators never record metrics: the per-response path stays free of side effects.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

const (
	LogAttrError          = "error"
	LogAttrEntityType     = "entity_type"
	LogAttrBuildID        = "build_id"
	LogAttrPath           = "path"
	LogAttrReason         = "reason"
	LogAttrGroupCount     = "group_count"
	LogAttrLookupSize     = "lookup_size"
	LogAttrDurationMS     = "duration_ms"
	MetricLabelEntityType = "entity_type"
	MetricLabelPath       = "path"
	MetricLabelStatus     = "status"
)

// LogDebug logs at debug level if a logger is configured.
func (s Settings) LogDebug(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, s.withBuildID(args)...)
	}
}

// LogInfo logs at info level if a logger is configured.
func (s Settings) LogInfo(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, s.withBuildID(args)...)
	}
}

// LogWarn logs at warn level if a logger is configured.
func (s Settings) LogWarn(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, s.withBuildID(args)...)
	}
}

// LogError logs err at error level if a logger is configured.
func (s Settings) LogError(msg string, err error, args ...any) {
	if s.Logger != nil {
		allArgs := []any{LogAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.Logger.Error(msg, s.withBuildID(allArgs)...)
	}
}

// RecordDuration records a duration metric if a collector is configured.
func (s Settings) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	if s.Metrics != nil {
		s.Metrics.RecordDuration(metric, duration, labels)
	}
}

// IncrementCounter increments a counter metric if a collector is configured.
func (s Settings) IncrementCounter(metric string, labels map[string]string) {
	if s.Metrics != nil {
		s.Metrics.IncrementCounter(metric, labels)
	}
}

// RecordValue records a value metric if a collector is configured.
func (s Settings) RecordValue(metric string, value float64, labels map[string]string) {
	if s.Metrics != nil {
		s.Metrics.RecordValue(metric, value, labels)
	}
}

func (s Settings) withBuildID(args []any) []any {
	if s.BuildID == "" {
		return args
	}

	return append([]any{LogAttrBuildID, s.BuildID}, args...)
}
