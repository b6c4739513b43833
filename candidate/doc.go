// Package candidate selects the records that survive a metadata filter, a
// document filter and an id allow-list.
//
// Select keeps the input order and returns a fresh slice. Records are never
// mutated. An empty allow-list places no constraint on ids; a nil predicate
// places no constraint on its side of the record.
//
//	where, _ := filter.ParseWhere(map[string]any{"category": "ml"})
//	out, err := candidate.Select(ctx, records,
//	    candidate.WithWhere(where),
//	    candidate.WithIDs("doc-1", "doc-4"),
//	    candidate.WithLimit(10),
//	)
package candidate
