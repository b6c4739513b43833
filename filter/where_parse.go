package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/vecfilter/metadata"
)

// ParseWhere converts a metadata filter configuration into a predicate tree.
//
//	{"category": "ml"}                                   // implicit $eq
//	{"citations": {"$gt": 100}}
//	{"category": {"$in": ["ml", "quantum"]}}
//	{"$and": [{"year": {"$gte": 2023}}, {"$or": [...]}]}
//
// A nil configuration means "no filter" and yields a nil Where without error.
// An empty mapping is rejected with ErrMalformedFilter. A mapping with
// several field keys is an implicit $and over its entries in key order.
//
// All errors are *ParseError values wrapping one of the sentinel errors.
func ParseWhere(cfg map[string]any, optFns ...ParseOption) (Where, error) {
	if cfg == nil {
		return nil, nil
	}
	p := &whereParser{opts: newParseOptions(optFns)}
	return p.parse(cfg, "")
}

type whereParser struct {
	opts parseOptions
}

func (p *whereParser) parse(m map[string]any, path string) (Where, error) {
	if len(m) == 0 {
		return nil, parseErr(ErrMalformedFilter, path, "", "empty filter")
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	nodes := make([]Where, 0, len(keys))
	for _, key := range keys {
		var (
			node Where
			err  error
		)
		switch {
		case key == "$and" || key == "$or":
			node, err = p.logical(key, m[key], path)
		case strings.HasPrefix(key, "$"):
			err = parseErr(ErrInvalidOperator, path, key, "unknown logical operator")
		default:
			node, err = p.field(key, m[key], joinPath(path, key))
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &And{Children: nodes}, nil
}

func (p *whereParser) logical(op string, val any, path string) (Where, error) {
	items, ok := asList(val)
	if !ok {
		return nil, parseErr(ErrMalformedFilter, path, op, fmt.Sprintf("expected a list of filters, got %T", val))
	}
	if len(items) == 0 {
		return nil, parseErr(ErrEmptyCombinator, path, op, "")
	}

	children := make([]Where, 0, len(items))
	for i, item := range items {
		itemPath := path + op + "[" + strconv.Itoa(i) + "]"
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, parseErr(ErrMalformedFilter, itemPath, op, fmt.Sprintf("expected a filter object, got %T", item))
		}
		child, err := p.parse(sub, itemPath)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if op == "$and" {
		return &And{Children: children}, nil
	}
	return &Or{Children: children}, nil
}

func (p *whereParser) field(key string, val any, path string) (Where, error) {
	opMap, ok := val.(map[string]any)
	if !ok {
		return p.compare(key, OpEq, val, path)
	}

	if len(opMap) != 1 {
		return nil, parseErr(ErrInvalidOperator, path, "", fmt.Sprintf("expected exactly one operator, got %d", len(opMap)))
	}

	for op, arg := range opMap {
		switch op {
		case string(OpEq), string(OpNe), string(OpGt), string(OpGte), string(OpLt), string(OpLte):
			return p.compare(key, Op(op), arg, path)
		case "$in", "$nin":
			return p.set(key, op, arg, path)
		case "$contains", "$not_contains":
			return p.contains(key, op, arg, path)
		default:
			return nil, parseErr(ErrInvalidOperator, path, op, "unknown operator")
		}
	}
	panic("unreachable")
}

func (p *whereParser) compare(key string, op Op, arg any, path string) (Where, error) {
	v, err := scalar(arg, path, string(op))
	if err != nil {
		return nil, err
	}
	if op.Ordering() && !v.IsNumber() {
		return nil, parseErr(ErrTypeMismatch, path, string(op), fmt.Sprintf("ordering requires a number, got %s", v.Kind))
	}
	if err := p.checkSchema(key, string(op), v, path); err != nil {
		return nil, err
	}
	return &Compare{Key: key, Op: op, Value: v}, nil
}

func (p *whereParser) set(key, op string, arg any, path string) (Where, error) {
	list, err := metadata.FromAny(arg)
	if err != nil || list.Kind != metadata.KindArray {
		return nil, parseErr(ErrMalformedFilter, path, op, fmt.Sprintf("expected a list of values, got %T", arg))
	}
	if err := validateSet(path, op, list.A); err != nil {
		return nil, err
	}
	if err := p.checkSchema(key, op, list.A[0], path); err != nil {
		return nil, err
	}

	if op == "$in" {
		return NewIn(key, list.A...), nil
	}
	return NewNotIn(key, list.A...), nil
}

func (p *whereParser) contains(key, op string, arg any, path string) (Where, error) {
	v, err := scalar(arg, path, op)
	if err != nil {
		return nil, err
	}
	if err := p.checkSchema(key, op, v, path); err != nil {
		return nil, err
	}
	if op == "$contains" {
		return &Contains{Key: key, Value: v}, nil
	}
	return &NotContains{Key: key, Value: v}, nil
}

func (p *whereParser) checkSchema(key, op string, v metadata.Value, path string) error {
	t, ok := p.opts.schema.Type(key)
	if !ok || schemaAccepts(t, op, v) {
		return nil
	}
	return parseErr(ErrTypeMismatch, path, op, fmt.Sprintf("field is declared %s, literal is %s", t, v.Kind))
}

func schemaAccepts(t metadata.FieldType, op string, v metadata.Value) bool {
	if t == metadata.FieldTypeAny {
		return true
	}
	if Op(op).Ordering() {
		return t.Numeric()
	}
	switch op {
	case "$contains", "$not_contains":
		switch t {
		case metadata.FieldTypeString:
			return v.Kind == metadata.KindString
		case metadata.FieldTypeArray:
			return true
		default:
			return false
		}
	}
	switch t {
	case metadata.FieldTypeInt, metadata.FieldTypeFloat:
		return v.IsNumber()
	case metadata.FieldTypeString:
		return v.Kind == metadata.KindString
	case metadata.FieldTypeBool:
		return v.Kind == metadata.KindBool
	default:
		return false
	}
}

func scalar(arg any, path, op string) (metadata.Value, error) {
	v, err := metadata.FromAny(arg)
	if err != nil {
		return metadata.Value{}, parseErr(ErrMalformedFilter, path, op, err.Error())
	}
	if !v.IsScalar() {
		return metadata.Value{}, parseErr(ErrMalformedFilter, path, op, fmt.Sprintf("expected a string, number or bool, got %s", v.Kind))
	}
	return v, nil
}

func family(v metadata.Value) string {
	switch v.Kind {
	case metadata.KindInt, metadata.KindFloat:
		return "number"
	default:
		return v.Kind.String()
	}
}

func asList(val any) ([]any, bool) {
	switch x := val.(type) {
	case []any:
		return x, true
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	default:
		return nil, false
	}
}
