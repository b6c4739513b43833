package vecfilter

import (
	"github.com/hupe1980/vecfilter/candidate"
	"github.com/hupe1980/vecfilter/filter"
)

// Parse errors. Every error returned by the parser wraps exactly one of these;
// use errors.Is to classify.
var (
	ErrMalformedFilter = filter.ErrMalformedFilter
	ErrInvalidOperator = filter.ErrInvalidOperator
	ErrEmptyCombinator = filter.ErrEmptyCombinator
	ErrTypeMismatch    = filter.ErrTypeMismatch
	ErrInvalidPattern  = filter.ErrInvalidPattern
)

// ErrInvalidPagination is returned for a negative limit or offset.
var ErrInvalidPagination = candidate.ErrInvalidPagination

// ParseError carries the location of a parse failure.
type ParseError = filter.ParseError
