package filter

import "github.com/hupe1980/vecfilter/model"

// Evaluate reports whether rec satisfies both predicates. A nil predicate
// places no constraint.
//
// The trees are validated first: an empty combinator or an unknown operator
// is an error rather than a match result. Callers evaluating many records
// validate once and use Match directly.
func Evaluate(where Where, whereDocument WhereDocument, rec model.Record) (bool, error) {
	if where != nil {
		if err := Validate(where); err != nil {
			return false, err
		}
		if !where.Match(rec.Metadata) {
			return false, nil
		}
	}
	if whereDocument != nil {
		if err := ValidateDocument(whereDocument); err != nil {
			return false, err
		}
		if !whereDocument.Match(rec.Document) {
			return false, nil
		}
	}
	return true, nil
}
