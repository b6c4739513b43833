package candidate

import "github.com/hupe1980/vecfilter/filter"

// DefaultMinChunk is the smallest chunk handed to a worker when Select runs
// in parallel. Inputs shorter than two chunks are filtered sequentially.
const DefaultMinChunk = 1024

type options struct {
	where         filter.Where
	whereDocument filter.WhereDocument
	ids           []string
	limit         int
	offset        int
	parallelism   int
	minChunk      int
}

// Option configures a Select call.
type Option func(*options)

// WithWhere sets the metadata predicate.
func WithWhere(w filter.Where) Option {
	return func(o *options) {
		o.where = w
	}
}

// WithWhereDocument sets the document predicate.
func WithWhereDocument(d filter.WhereDocument) Option {
	return func(o *options) {
		o.whereDocument = d
	}
}

// WithIDs restricts the result to the given ids. Calling it with no ids
// leaves the result unconstrained.
func WithIDs(ids ...string) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithLimit caps the number of returned records. Zero means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithOffset skips the first n surviving records.
func WithOffset(n int) Option {
	return func(o *options) {
		o.offset = n
	}
}

// WithParallelism evaluates predicates on up to n goroutines.
// Values below 2 select the sequential path.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMinChunk overrides DefaultMinChunk.
func WithMinChunk(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minChunk = n
		}
	}
}
