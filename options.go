package vecfilter

import (
	"log/slog"
	"time"

	"github.com/hupe1980/vecfilter/metadata"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultFilterCacheTTL is how long a compiled filter stays cached.
const DefaultFilterCacheTTL = 10 * time.Minute

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	tracerProvider   trace.TracerProvider
	cacheTTL         time.Duration
	parallelism      int
	schema           metadata.Schema
	caseInsensitive  bool
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecfilter.BasicMetricsCollector{}
//	eng := vecfilter.New(vecfilter.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Selects: %d, cache hits: %d\n", stats.SelectCount, stats.CacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
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

// WithTracerProvider sets the OpenTelemetry tracer provider.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithFilterCacheTTL sets how long compiled filters are cached.
// Zero selects DefaultFilterCacheTTL; a negative ttl disables the cache.
// Expired entries are purged every 2*ttl, so the cache holds at most the
// distinct filters compiled within that window.
func WithFilterCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = ttl
	}
}

// WithParallelism evaluates large candidate sets on up to n goroutines.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithSchema rejects filters whose literals contradict the declared field types.
func WithSchema(s metadata.Schema) Option {
	return func(o *options) {
		o.schema = s
	}
}

// WithCaseInsensitive makes document $contains and $regex ignore case.
func WithCaseInsensitive() Option {
	return func(o *options) {
		o.caseInsensitive = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		cacheTTL:         DefaultFilterCacheTTL,
		parallelism:      1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}
