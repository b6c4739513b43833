package vecfilter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector is a MetricsCollector backed by Prometheus metrics.
type PrometheusCollector struct {
	parsesTotal     *prometheus.CounterVec
	cacheTotal      *prometheus.CounterVec
	selectsTotal    *prometheus.CounterVec
	selectDuration  prometheus.Histogram
	candidatesTotal prometheus.Counter
	selectedTotal   prometheus.Counter
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &PrometheusCollector{
		parsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecfilter",
			Name:      "parses_total",
			Help:      "Total number of compiled filters",
		}, []string{"kind", "status"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecfilter",
			Name:      "filter_cache_total",
			Help:      "Compiled filter cache lookups",
		}, []string{"kind", "result"}),
		selectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vecfilter",
			Name:      "selects_total",
			Help:      "Total number of select operations",
		}, []string{"status"}),
		selectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vecfilter",
			Name:      "select_duration_seconds",
			Help:      "Duration of select operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		candidatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vecfilter",
			Name:      "candidates_total",
			Help:      "Records offered to select",
		}),
		selectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vecfilter",
			Name:      "selected_total",
			Help:      "Records returned by select",
		}),
	}

	for _, c := range []prometheus.Collector{
		p.parsesTotal,
		p.cacheTotal,
		p.selectsTotal,
		p.selectDuration,
		p.candidatesTotal,
		p.selectedTotal,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordParse implements MetricsCollector.
func (p *PrometheusCollector) RecordParse(kind string, _ time.Duration, err error) {
	p.parsesTotal.WithLabelValues(kind, status(err)).Inc()
}

// RecordCacheHit implements MetricsCollector.
func (p *PrometheusCollector) RecordCacheHit(kind string) {
	p.cacheTotal.WithLabelValues(kind, "hit").Inc()
}

// RecordCacheMiss implements MetricsCollector.
func (p *PrometheusCollector) RecordCacheMiss(kind string) {
	p.cacheTotal.WithLabelValues(kind, "miss").Inc()
}

// RecordSelect implements MetricsCollector.
func (p *PrometheusCollector) RecordSelect(candidates, selected int, duration time.Duration, err error) {
	p.selectsTotal.WithLabelValues(status(err)).Inc()
	p.selectDuration.Observe(duration.Seconds())
	if err != nil {
		return
	}
	p.candidatesTotal.Add(float64(candidates))
	p.selectedTotal.Add(float64(selected))
}
