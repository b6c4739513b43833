package metadata

import (
	"fmt"
)

// FieldType defines the data type of a metadata field.
type FieldType uint8

const (
	FieldTypeAny FieldType = iota
	FieldTypeInt
	FieldTypeFloat
	FieldTypeString
	FieldTypeBool
	FieldTypeArray
)

// String returns the string representation of the FieldType.
func (t FieldType) String() string {
	switch t {
	case FieldTypeAny:
		return "Any"
	case FieldTypeInt:
		return "Int"
	case FieldTypeFloat:
		return "Float"
	case FieldTypeString:
		return "String"
	case FieldTypeBool:
		return "Bool"
	case FieldTypeArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Numeric reports whether fields of this type can be range-compared.
func (t FieldType) Numeric() bool {
	return t == FieldTypeInt || t == FieldTypeFloat
}

// Schema defines the expected structure of metadata.
//
// Fields not listed are unconstrained.
type Schema map[string]FieldType

// Type returns the declared type of key.
func (s Schema) Type(key string) (FieldType, bool) {
	if s == nil {
		return FieldTypeAny, false
	}
	t, ok := s[key]
	return t, ok
}

// Allows reports whether a value of kind k may be stored under key.
func (s Schema) Allows(key string, k Kind) bool {
	t, ok := s.Type(key)
	if !ok {
		return true
	}
	return checkKind(k, t)
}

// Validate checks if the given metadata document conforms to the schema.
func (s Schema) Validate(doc Document) error {
	if s == nil {
		return nil
	}
	for k, v := range doc {
		if !s.Allows(k, v.Kind) {
			return fmt.Errorf("field %q has invalid type %s, expected %s", k, v.Kind, s[k])
		}
	}
	return nil
}

func checkKind(k Kind, expected FieldType) bool {
	if k == KindNull {
		return true
	}
	switch expected {
	case FieldTypeAny:
		return true
	case FieldTypeInt:
		return k == KindInt
	case FieldTypeFloat:
		return k == KindFloat || k == KindInt // Allow upgrading Int to Float
	case FieldTypeString:
		return k == KindString
	case FieldTypeBool:
		return k == KindBool
	case FieldTypeArray:
		return k == KindArray
	}
	return false
}

// ParseFieldType parses a field type name such as "string" or "Int".
func ParseFieldType(name string) (FieldType, error) {
	switch name {
	case "any", "Any", "":
		return FieldTypeAny, nil
	case "int", "Int", "integer":
		return FieldTypeInt, nil
	case "float", "Float", "number":
		return FieldTypeFloat, nil
	case "string", "String":
		return FieldTypeString, nil
	case "bool", "Bool", "boolean":
		return FieldTypeBool, nil
	case "array", "Array":
		return FieldTypeArray, nil
	default:
		return FieldTypeAny, fmt.Errorf("unknown field type %q", name)
	}
}
