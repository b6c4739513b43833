package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema validates metadata documents against a JSON Schema document.
//
// It complements Schema when constraints go beyond field kinds, for example
// enums, numeric bounds or required fields.
type JSONSchema struct {
	schema *gojsonschema.Schema
}

// NewJSONSchema compiles a JSON Schema from its JSON source.
func NewJSONSchema(source []byte) (*JSONSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(source))
	if err != nil {
		return nil, fmt.Errorf("compile metadata json schema: %w", err)
	}
	return &JSONSchema{schema: s}, nil
}

// Validate checks doc against the schema. All violations are reported in a
// single error.
func (s *JSONSchema) Validate(doc Document) error {
	if s == nil {
		return nil
	}
	m := doc.ToAny()
	if m == nil {
		m = map[string]any{}
	}
	res, err := s.schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return fmt.Errorf("validate metadata: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New("metadata does not match schema: " + strings.Join(msgs, "; "))
}
