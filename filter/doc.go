// Package filter parses and evaluates the `where` and `where_document`
// filter languages.
//
// # Metadata Filters
//
// A metadata filter is a mapping from field names to conditions:
//
//	{"category": "ml"}                          // $eq sugar
//	{"citations": {"$gt": 100}}
//	{"category": {"$nin": ["ml", "quantum"]}}
//	{"$and": [
//	    {"year": {"$gte": 2023}},
//	    {"$or": [{"category": "ml"}, {"category": "quantum"}]}
//	]}
//
// Supported operators are $eq, $ne, $gt, $gte, $lt, $lte, $in, $nin,
// $contains and $not_contains, combined with $and and $or.
//
// # Document Filters
//
// A document filter holds exactly one of $contains, $not_contains, $regex,
// $not_regex, $and or $or. Records without document text never match a
// document filter, including the negated operators.
//
// # Absent Keys
//
// A comparison against a key the record does not have is false. The negative
// operators $ne, $nin and $not_contains are true for such records.
//
// # Parsing
//
// ParseWhere and ParseWhereDocument turn untyped configuration into
// immutable predicate trees. Every error is a *ParseError wrapping one of
// ErrMalformedFilter, ErrInvalidOperator, ErrEmptyCombinator,
// ErrTypeMismatch or ErrInvalidPattern:
//
//	where, err := filter.ParseWhere(map[string]any{
//	    "citations": map[string]any{"$gt": 100},
//	})
//	if errors.Is(err, filter.ErrTypeMismatch) {
//	    // ...
//	}
//
// Parsed trees are safe for concurrent use and can be cached and reused
// across many evaluations.
package filter
