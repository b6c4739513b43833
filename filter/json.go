package filter

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// decoder keeps JSON integers as json.Number so that 2024 parses as an int
// literal rather than a float.
var decoder = sonic.Config{UseNumber: true}.Froze()

// ParseWhereJSON parses a metadata filter from its JSON text.
//
// Empty input and the literal null mean "no filter".
func ParseWhereJSON(data []byte, optFns ...ParseOption) (Where, error) {
	cfg, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return ParseWhere(cfg, optFns...)
}

// ParseWhereDocumentJSON parses a document filter from its JSON text.
//
// Empty input and the literal null mean "no filter".
func ParseWhereDocumentJSON(data []byte, optFns ...ParseOption) (WhereDocument, error) {
	cfg, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return ParseWhereDocument(cfg, optFns...)
}

// DecodeJSON decodes filter JSON into the configuration map accepted by
// ParseWhere and ParseWhereDocument. Integers stay json.Number.
//
// Empty input and the literal null yield a nil map, meaning "no filter".
// Anything other than a JSON object fails with ErrMalformedFilter.
func DecodeJSON(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, parseErr(ErrMalformedFilter, "", "", "filter must be a JSON object")
	}
	var cfg map[string]any
	if err := decoder.Unmarshal(trimmed, &cfg); err != nil {
		return nil, parseErr(ErrMalformedFilter, "", "", err.Error())
	}
	return cfg, nil
}

// Format renders a metadata predicate as canonical JSON with sorted keys.
func Format(w Where) string {
	if w == nil {
		return "null"
	}
	s, err := sonic.ConfigStd.MarshalToString(w.Map())
	if err != nil {
		return "<unformattable filter: " + err.Error() + ">"
	}
	return s
}

// FormatDocument renders a document predicate as canonical JSON with sorted keys.
func FormatDocument(d WhereDocument) string {
	if d == nil {
		return "null"
	}
	s, err := sonic.ConfigStd.MarshalToString(d.Map())
	if err != nil {
		return "<unformattable filter: " + err.Error() + ">"
	}
	return s
}
