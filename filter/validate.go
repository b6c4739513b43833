package filter

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/vecfilter/metadata"
)

// Validate checks a hand-built metadata predicate tree for the invariants the
// parser guarantees: non-empty combinators, numeric literals for ordering
// operators and non-empty homogeneous value sets.
//
// Trees returned by ParseWhere always validate. Unknown Where implementations
// are accepted as-is.
func Validate(w Where) error {
	return validateWhere(w, "")
}

func validateWhere(w Where, path string) error {
	switch n := w.(type) {
	case nil:
		return parseErr(ErrMalformedFilter, path, "", "nil predicate")
	case *Compare:
		if !n.Value.IsScalar() {
			return parseErr(ErrMalformedFilter, joinPath(path, n.Key), string(n.Op), "literal is not a scalar")
		}
		if n.Op.Ordering() && !n.Value.IsNumber() {
			return parseErr(ErrTypeMismatch, joinPath(path, n.Key), string(n.Op), "ordering requires a number")
		}
		switch n.Op {
		case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		default:
			return parseErr(ErrInvalidOperator, joinPath(path, n.Key), string(n.Op), "unknown operator")
		}
	case *In:
		return validateSet(joinPath(path, n.Key), "$in", n.Values)
	case *NotIn:
		return validateSet(joinPath(path, n.Key), "$nin", n.Values)
	case *Contains:
		if !n.Value.IsScalar() {
			return parseErr(ErrMalformedFilter, joinPath(path, n.Key), "$contains", "literal is not a scalar")
		}
	case *NotContains:
		if !n.Value.IsScalar() {
			return parseErr(ErrMalformedFilter, joinPath(path, n.Key), "$not_contains", "literal is not a scalar")
		}
	case *And:
		return validateChildren("$and", n.Children, path)
	case *Or:
		return validateChildren("$or", n.Children, path)
	}
	return nil
}

func validateSet(path, op string, values []metadata.Value) error {
	if len(values) == 0 {
		return parseErr(ErrMalformedFilter, path, op, "empty value list")
	}
	first := family(values[0])
	for i, v := range values {
		if !v.IsScalar() {
			return parseErr(ErrMalformedFilter, path, op, fmt.Sprintf("element %d is not a scalar", i))
		}
		if family(v) != first {
			return parseErr(ErrTypeMismatch, path, op, fmt.Sprintf("element %d is a %s, list holds %ss", i, family(v), first))
		}
	}
	return nil
}

func validateChildren(op string, children []Where, path string) error {
	if len(children) == 0 {
		return parseErr(ErrEmptyCombinator, path, op, "")
	}
	for i, c := range children {
		if err := validateWhere(c, path+op+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDocument checks a hand-built document predicate tree.
func ValidateDocument(d WhereDocument) error {
	return validateDocument(d, "")
}

func validateDocument(d WhereDocument, path string) error {
	switch n := d.(type) {
	case nil:
		return parseErr(ErrMalformedFilter, path, "", "nil predicate")
	case *DocRegex:
		if n.re == nil {
			return parseErr(ErrInvalidPattern, path, "$regex", fmt.Sprintf("pattern %q was not compiled, use Regex", n.Pattern))
		}
	case *DocNotRegex:
		if n.re == nil {
			return parseErr(ErrInvalidPattern, path, "$not_regex", fmt.Sprintf("pattern %q was not compiled, use NotRegex", n.Pattern))
		}
	case *DocAnd:
		return validateDocChildren("$and", n.Children, path)
	case *DocOr:
		return validateDocChildren("$or", n.Children, path)
	}
	return nil
}

func validateDocChildren(op string, children []WhereDocument, path string) error {
	if len(children) == 0 {
		return parseErr(ErrEmptyCombinator, path, op, "")
	}
	for i, c := range children {
		if err := validateDocument(c, path+op+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}
