package vecfilter

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hupe1980/vecfilter/candidate"
	"github.com/hupe1980/vecfilter/filter"
	"github.com/hupe1980/vecfilter/model"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hupe1980/vecfilter"

// Query describes one select operation.
//
// Where and WhereDocument are filter configurations as decoded from JSON,
// TOML or written as Go literals. Nil means no filter.
type Query struct {
	Where         map[string]any
	WhereDocument map[string]any
	// IDs restricts the result to these ids. Empty means unconstrained.
	IDs []string
	// Limit caps the result size. Zero means no limit.
	Limit int
	// Offset skips surviving records before Limit applies.
	Offset int
}

// Engine compiles filters and selects records.
//
// An Engine is safe for concurrent use. It holds no records; callers pass the
// candidate set to every Select.
type Engine struct {
	opts      options
	parseOpts []filter.ParseOption
	compiled  *cache.Cache // nil when caching is disabled
	tracer    trace.Tracer
	logger    *Logger
	metrics   MetricsCollector
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)

	e := &Engine{
		opts:    o,
		tracer:  o.tracerProvider.Tracer(tracerName),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}

	if o.schema != nil {
		e.parseOpts = append(e.parseOpts, filter.WithSchema(o.schema))
	}
	if o.caseInsensitive {
		e.parseOpts = append(e.parseOpts, filter.WithCaseInsensitive())
	}

	// Entries always expire; the janitor bounds the cache to the filters
	// seen within roughly two TTLs.
	if o.cacheTTL >= 0 {
		ttl := o.cacheTTL
		if ttl == 0 {
			ttl = DefaultFilterCacheTTL
		}
		e.compiled = cache.New(ttl, 2*ttl)
	}

	return e
}

// ParseWhere compiles a metadata filter, consulting the cache first.
func (e *Engine) ParseWhere(ctx context.Context, cfg map[string]any) (filter.Where, error) {
	if cfg == nil {
		return nil, nil
	}
	v, err := e.compile(ctx, KindWhere, cfg, func() (any, error) {
		return filter.ParseWhere(cfg, e.parseOpts...)
	})
	if err != nil {
		return nil, err
	}
	return v.(filter.Where), nil
}

// ParseWhereDocument compiles a document filter, consulting the cache first.
func (e *Engine) ParseWhereDocument(ctx context.Context, cfg map[string]any) (filter.WhereDocument, error) {
	if cfg == nil {
		return nil, nil
	}
	v, err := e.compile(ctx, KindWhereDocument, cfg, func() (any, error) {
		return filter.ParseWhereDocument(cfg, e.parseOpts...)
	})
	if err != nil {
		return nil, err
	}
	return v.(filter.WhereDocument), nil
}

func (e *Engine) compile(ctx context.Context, kind string, cfg map[string]any, parse func() (any, error)) (any, error) {
	key := cacheKey(kind, cfg)

	if e.compiled != nil && key != "" {
		if v, ok := e.compiled.Get(key); ok {
			e.metrics.RecordCacheHit(kind)
			e.logger.LogParse(ctx, kind, true, nil)
			return v, nil
		}
		e.metrics.RecordCacheMiss(kind)
	}

	start := time.Now()
	v, err := parse()
	e.metrics.RecordParse(kind, time.Since(start), err)
	e.logger.LogParse(ctx, kind, false, err)
	if err != nil {
		return nil, err
	}

	if e.compiled != nil && key != "" {
		e.compiled.SetDefault(key, v)
	}
	return v, nil
}

// cacheKey returns the canonical JSON of cfg, or "" when it has no JSON form.
func cacheKey(kind string, cfg map[string]any) string {
	s, err := sonic.ConfigStd.MarshalToString(cfg)
	if err != nil {
		return ""
	}
	return kind + ":" + s
}

// Select returns the records that match q, in input order.
//
// Both filters are compiled before any record is looked at; a parse error
// aborts the call without partial results.
func (e *Engine) Select(ctx context.Context, records []model.Record, q Query) ([]model.Record, error) {
	ctx, span := e.tracer.Start(ctx, "vecfilter.Select", trace.WithAttributes(
		attribute.Int("vecfilter.candidates", len(records)),
		attribute.Int("vecfilter.allowlist", len(q.IDs)),
	))
	defer span.End()

	start := time.Now()
	out, err := e.selectRecords(ctx, records, q)
	duration := time.Since(start)

	e.metrics.RecordSelect(len(records), len(out), duration, err)
	e.logger.LogSelect(ctx, len(records), len(out), duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("vecfilter.selected", len(out)))
	return out, nil
}

func (e *Engine) selectRecords(ctx context.Context, records []model.Record, q Query) ([]model.Record, error) {
	where, err := e.ParseWhere(ctx, q.Where)
	if err != nil {
		return nil, err
	}
	whereDocument, err := e.ParseWhereDocument(ctx, q.WhereDocument)
	if err != nil {
		return nil, err
	}

	return candidate.Select(ctx, records,
		candidate.WithWhere(where),
		candidate.WithWhereDocument(whereDocument),
		candidate.WithIDs(q.IDs...),
		candidate.WithLimit(q.Limit),
		candidate.WithOffset(q.Offset),
		candidate.WithParallelism(e.opts.parallelism),
	)
}

// SelectIDs is Select projected onto record ids.
func (e *Engine) SelectIDs(ctx context.Context, records []model.Record, q Query) ([]string, error) {
	out, err := e.Select(ctx, records, q)
	if err != nil {
		return nil, err
	}
	return model.IDs(out), nil
}

// CachedFilters returns the number of compiled filters currently cached.
func (e *Engine) CachedFilters() int {
	if e.compiled == nil {
		return 0
	}
	return e.compiled.ItemCount()
}
