package filter

import "github.com/hupe1980/vecfilter/metadata"

type parseOptions struct {
	schema          metadata.Schema
	caseInsensitive bool
}

// ParseOption configures ParseWhere and ParseWhereDocument.
type ParseOption func(*parseOptions)

// WithSchema rejects filters whose literals or operators conflict with the
// declared field types. Fields missing from the schema are unconstrained.
func WithSchema(s metadata.Schema) ParseOption {
	return func(o *parseOptions) {
		o.schema = s
	}
}

// WithCaseInsensitive compiles document $regex/$not_regex patterns with the
// (?i) flag and matches $contains/$not_contains text the same way, so both
// operator families fold case identically.
//
// Matching is case-sensitive by default.
func WithCaseInsensitive() ParseOption {
	return func(o *parseOptions) {
		o.caseInsensitive = true
	}
}

func newParseOptions(optFns []ParseOption) parseOptions {
	var o parseOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
