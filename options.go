package shallowshadow

import "log/slog"

type options struct {
	eta             float64
	perObservable   int
	maxMeasurements int // 0 means derived from perObservable and set size
	parallelism     int
	logger          *Logger
}

// Option configures session behavior.
type Option func(*options)

// WithEta configures the exponent rate of the confidence-bound cost.
// Larger values weigh under-covered observables more aggressively.
//
// The default is 0.9.
func WithEta(eta float64) Option {
	return func(o *options) {
		o.eta = eta
	}
}

// WithMeasurementsPerObservable configures how many hits each
// observable should accumulate, scaled by its weight. An observable
// with weight w targets floor(w * perObservable) hits.
//
// The default is 100.
func WithMeasurementsPerObservable(per int) Option {
	return func(o *options) {
		o.perObservable = per
	}
}

// WithMaxMeasurements caps the total number of derived measurement
// circuits. The run stops at the cap even when some observables have
// not reached their target.
//
// If unset, the cap is perObservable times the number of observables.
func WithMaxMeasurements(maxMeasurements int) Option {
	return func(o *options) {
		o.maxMeasurements = maxMeasurements
	}
}

// WithParallelism configures the number of workers used for the
// per-observable weight sweeps. Each worker contracts with its own
// scratch buffers.
//
// The default is 1 (sequential).
func WithParallelism(parallelism int) Option {
	return func(o *options) {
		o.parallelism = parallelism
	}
}

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		eta:           0.9,
		perObservable: 100,
		parallelism:   1,
		logger:        NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
