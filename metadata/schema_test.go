package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeString(t *testing.T) {
	tests := []struct {
		ft       FieldType
		expected string
	}{
		{FieldTypeAny, "Any"},
		{FieldTypeInt, "Int"},
		{FieldTypeFloat, "Float"},
		{FieldTypeString, "String"},
		{FieldTypeBool, "Bool"},
		{FieldTypeArray, "Array"},
		{FieldType(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ft.String())
	}
}

func TestSchemaValidate(t *testing.T) {
	s := Schema{
		"s": FieldTypeString,
		"i": FieldTypeInt,
		"f": FieldTypeFloat,
		"a": FieldTypeAny,
	}

	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{
			"Valid",
			Document{
				"s": String("val"),
				"i": Int(10),
				"f": Float(3.5),
				"a": Bool(true),
			},
			false,
		},
		{
			"Valid_IntAsFloat",
			Document{"f": Int(10)}, // Allowed upgrade
			false,
		},
		{
			"Valid_UnknownField",
			Document{"unknown": Int(1)}, // Should be ignored
			false,
		},
		{
			"Valid_Null",
			Document{"s": Null()},
			false,
		},
		{
			"Invalid_Type",
			Document{"s": Int(1)},
			true,
		},
		{
			"Invalid_IntAsBool",
			Document{"i": Bool(true)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// Nil schema
	var nilSchema Schema
	assert.NoError(t, nilSchema.Validate(Document{"a": Int(1)}))
}

func TestSchemaAllows(t *testing.T) {
	s := Schema{
		"category":  FieldTypeString,
		"citations": FieldTypeInt,
		"score":     FieldTypeFloat,
	}

	assert.True(t, s.Allows("category", KindString))
	assert.False(t, s.Allows("category", KindInt))
	assert.True(t, s.Allows("score", KindInt))
	assert.False(t, s.Allows("citations", KindFloat))
	assert.True(t, s.Allows("undeclared", KindBool))

	ft, ok := s.Type("citations")
	assert.True(t, ok)
	assert.True(t, ft.Numeric())

	_, ok = Schema(nil).Type("citations")
	assert.False(t, ok)
}

func TestParseFieldType(t *testing.T) {
	for name, want := range map[string]FieldType{
		"string":  FieldTypeString,
		"Int":     FieldTypeInt,
		"number":  FieldTypeFloat,
		"boolean": FieldTypeBool,
		"array":   FieldTypeArray,
		"":        FieldTypeAny,
	} {
		got, err := ParseFieldType(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFieldType("date")
	assert.Error(t, err)
}

func TestJSONSchema(t *testing.T) {
	s, err := NewJSONSchema([]byte(`{
		"type": "object",
		"required": ["tenant_id", "doc_type"],
		"properties": {
			"tenant_id": {"type": "string", "minLength": 1},
			"doc_type": {"enum": ["policy", "faq", "runbook"]},
			"priority": {"type": "integer", "minimum": 1, "maximum": 5}
		}
	}`))
	require.NoError(t, err)

	assert.NoError(t, s.Validate(Document{
		"tenant_id": String("acme"),
		"doc_type":  String("policy"),
		"priority":  Int(2),
	}))

	err = s.Validate(Document{
		"tenant_id": String("acme"),
		"doc_type":  String("faq"),
		"priority":  Int(9),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")

	err = s.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant_id")

	var nilSchema *JSONSchema
	assert.NoError(t, nilSchema.Validate(Document{}))

	_, err = NewJSONSchema([]byte(`{"type": 12}`))
	assert.Error(t, err)
}
