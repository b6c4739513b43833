package vecfilter

import (
	"sync/atomic"
	"time"
)

// Filter kinds reported to loggers and metrics collectors.
const (
	KindWhere         = "where"
	KindWhereDocument = "where_document"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with other monitoring systems;
// PrometheusCollector covers Prometheus.
type MetricsCollector interface {
	// RecordParse is called after a filter was compiled (cache misses only).
	// kind is KindWhere or KindWhereDocument, err is nil if successful.
	RecordParse(kind string, duration time.Duration, err error)

	// RecordCacheHit is called when a compiled filter is served from cache.
	RecordCacheHit(kind string)

	// RecordCacheMiss is called when a filter has to be compiled.
	RecordCacheMiss(kind string)

	// RecordSelect is called after each select operation.
	// candidates is the input size, selected the output size.
	RecordSelect(candidates, selected int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(string, time.Duration, error)    {}
func (NoopMetricsCollector) RecordCacheHit(string)                       {}
func (NoopMetricsCollector) RecordCacheMiss(string)                      {}
func (NoopMetricsCollector) RecordSelect(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount       atomic.Int64
	ParseErrors      atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64
	SelectCount      atomic.Int64
	SelectErrors     atomic.Int64
	SelectTotalNanos atomic.Int64
	Candidates       atomic.Int64
	Selected         atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(_ string, _ time.Duration, err error) {
	b.ParseCount.Add(1)
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit(string) {
	b.CacheHits.Add(1)
}

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss(string) {
	b.CacheMisses.Add(1)
}

// RecordSelect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelect(candidates, selected int, duration time.Duration, err error) {
	b.SelectCount.Add(1)
	b.SelectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectErrors.Add(1)
		return
	}
	b.Candidates.Add(int64(candidates))
	b.Selected.Add(int64(selected))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:     b.ParseCount.Load(),
		ParseErrors:    b.ParseErrors.Load(),
		CacheHits:      b.CacheHits.Load(),
		CacheMisses:    b.CacheMisses.Load(),
		SelectCount:    b.SelectCount.Load(),
		SelectErrors:   b.SelectErrors.Load(),
		SelectAvgNanos: b.getAvgSelectNanos(),
		Candidates:     b.Candidates.Load(),
		Selected:       b.Selected.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSelectNanos() int64 {
	count := b.SelectCount.Load()
	if count == 0 {
		return 0
	}
	return b.SelectTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount     int64
	ParseErrors    int64
	CacheHits      int64
	CacheMisses    int64
	SelectCount    int64
	SelectErrors   int64
	SelectAvgNanos int64
	Candidates     int64
	Selected       int64
}

// Selectivity returns the fraction of candidates that survived filtering.
func (s BasicMetricsStats) Selectivity() float64 {
	if s.Candidates == 0 {
		return 0
	}
	return float64(s.Selected) / float64(s.Candidates)
}
