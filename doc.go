// Package vecfilter evaluates where / where_document filters against records.
//
// The filter language is the one used by document-oriented vector stores:
// metadata filters built from $eq, $ne, $gt, $gte, $lt, $lte, $in, $nin,
// $contains, $not_contains, $and and $or, and document filters built from
// $contains, $not_contains, $regex, $not_regex, $and and $or.
//
// # Packages
//
//   - metadata: typed metadata values, schemas
//   - model: the Record type
//   - filter: parser and evaluator for both filter kinds
//   - candidate: order-preserving selection with an id allow-list
//   - source, recordio: loading record snapshots for the command line tool
//
// # Quick Start
//
//	eng := vecfilter.New(vecfilter.WithLogger(vecfilter.NewTextLogger(slog.LevelInfo)))
//
//	out, err := eng.Select(ctx, records, vecfilter.Query{
//	    Where: map[string]any{
//	        "$and": []any{
//	            map[string]any{"year": map[string]any{"$gte": 2023}},
//	            map[string]any{"category": map[string]any{"$in": []any{"ml", "quantum"}}},
//	        },
//	    },
//	    WhereDocument: map[string]any{"$contains": "learning"},
//	    IDs:           []string{"doc-1", "doc-2"},
//	})
//
// A nil filter means "no filter". An empty mapping is rejected with
// ErrMalformedFilter.
//
// # Absent values
//
// Comparisons against a key the record does not have are false, except $ne,
// $nin and $not_contains, which are true. A record without a document never
// matches a document filter.
//
// # Caching
//
// The Engine caches parsed filters keyed by their canonical JSON, so repeated
// queries skip parsing and regex compilation. See WithFilterCacheTTL.
package vecfilter
