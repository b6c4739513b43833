package metadata

import "strings"

// Equal reports whether a and b are equal.
//
// Strings compare exactly, ints and floats compare numerically and bools only
// equal bools. Values of unrelated kinds are never equal.
func Equal(a, b Value) bool {
	if a.Kind == KindNull && b.Kind == KindNull {
		return true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return false
	}

	if a.IsNumber() && b.IsNumber() {
		// Prefer exact int compare when possible.
		if a.Kind == KindInt && b.Kind == KindInt {
			return a.I64 == b.I64
		}
		fa, _ := a.AsFloat64()
		fb, _ := b.AsFloat64()
		return fa == fb
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindString:
		return a.s == b.s
	case KindBool:
		return a.B == b.B
	case KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !Equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CompareNumbers orders two numeric values.
//
// ok is false when either side is not a number; cmp is -1, 0 or 1.
func CompareNumbers(a, b Value) (cmp int, ok bool) {
	if a.Kind == KindInt && b.Kind == KindInt {
		switch {
		case a.I64 < b.I64:
			return -1, true
		case a.I64 > b.I64:
			return 1, true
		default:
			return 0, true
		}
	}

	fa, okA := a.AsFloat64()
	fb, okB := b.AsFloat64()
	if !okA || !okB {
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	case fa == fb:
		return 0, true
	default:
		// NaN on either side
		return 0, false
	}
}

// Contains reports whether haystack contains needle.
//
// For a string haystack it is a substring test against a string needle; for
// an array haystack it is element equality. Other kinds never contain anything.
func Contains(haystack, needle Value) bool {
	switch haystack.Kind {
	case KindString:
		if needle.Kind != KindString {
			return false
		}
		return strings.Contains(haystack.s.Value(), needle.s.Value())
	case KindArray:
		for _, item := range haystack.A {
			if Equal(item, needle) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
