// Package metadata provides the typed value model used by record metadata
// and filter literals.
//
// # Metadata Types
//
// Metadata values can be:
//
//   - String: metadata.String("ml")
//   - Int: metadata.Int(2024)
//   - Float: metadata.Float(0.91)
//   - Bool: metadata.Bool(true)
//   - Array: metadata.Array([]metadata.Value{metadata.String("a")})
//
// Example:
//
//	meta := metadata.Document{
//	    "category":  metadata.String("ml"),
//	    "year":      metadata.Int(2024),
//	    "citations": metadata.Int(150),
//	}
//
// Untyped input (decoded JSON, config files) is converted with FromAny and
// DocumentFromAny.
//
// # Comparison
//
// Equal, CompareNumbers and Contains implement the comparison rules shared
// by the filter package: strings compare exactly, ints and floats compare
// numerically, and values of unrelated kinds never match.
//
// # Schemas
//
// Schema declares field kinds and is used both to validate documents and to
// reject ill-typed filters at parse time. JSONSchema validates documents
// against a full JSON Schema.
package metadata
