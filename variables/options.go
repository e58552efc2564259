package variables

// DefaultCombinationLimit bounds the lookup table an optimized variable may precompute.
const DefaultCombinationLimit = 1_000_000

// Settings carries the configuration shared by all variable constructors.
type Settings struct {
	Logger           Logger
	Metrics          MetricsCollector
	BuildID          string
	CombinationLimit int
}

// Option defines a functional option for configuring variable construction.
type Option func(*Settings) error

// ApplyOptions returns the default Settings with all options applied in order.
func ApplyOptions(options ...Option) (Settings, error) {
	settings := Settings{CombinationLimit: DefaultCombinationLimit}

	for _, option := range options {
		if err := option(&settings); err != nil {
			return Settings{}, err
		}
	}

	return settings, nil
}

// WithLogger sets the logger.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: why an optimization was not applied
// Info level: which compiled form was chosen, lookup sizes, durations
// Warn level: suspicious but accepted configuration such as overlapping waves
// Error level: definitions that failed to compile.
func WithLogger(logger Logger) Option {
	return func(s *Settings) error {
		s.Logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector receiving compilation durations, chosen paths and lookup sizes.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Settings) error {
		s.Metrics = collector
		return nil
	}
}

// WithBuildID tags all logs of one metadata build, so rebuilt variables can be told apart.
func WithBuildID(buildID string) Option {
	return func(s *Settings) error {
		s.BuildID = buildID
		return nil
	}
}

// WithCombinationLimit sets the maximum projected lookup table size of the instance list optimizer.
func WithCombinationLimit(limit int) Option {
	return func(s *Settings) error {
		if limit <= 0 {
			return ErrInvalidCombinationMax
		}

		s.CombinationLimit = limit

		return nil
	}
}
