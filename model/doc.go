// Package model defines the record type the filter engine operates on.
//
// # Data Types
//
//   - Record: id, typed metadata and optional document text
//
// # Record Builder
//
// Use the fluent API to construct records:
//
//	rec := model.NewRecord("doc-1").
//	    WithMetadata("category", metadata.String("ml")).
//	    WithMetadata("year", metadata.Int(2024)).
//	    WithDocument("Machine learning is transforming healthcare diagnostics.").
//	    Build()
package model
