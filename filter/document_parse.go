package filter

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseWhereDocument converts a document filter configuration into a
// predicate tree.
//
//	{"$contains": "learning"}
//	{"$regex": "learning.*training"}
//	{"$and": [{"$contains": "learning"}, {"$not_contains": "healthcare"}]}
//
// Every mapping must hold exactly one operator. Regular expressions are
// compiled here so an invalid pattern fails before any record is evaluated.
// A nil configuration yields a nil WhereDocument without error.
func ParseWhereDocument(cfg map[string]any, optFns ...ParseOption) (WhereDocument, error) {
	if cfg == nil {
		return nil, nil
	}
	p := &documentParser{opts: newParseOptions(optFns)}
	return p.parse(cfg, "")
}

type documentParser struct {
	opts parseOptions
}

func (p *documentParser) parse(m map[string]any, path string) (WhereDocument, error) {
	switch len(m) {
	case 0:
		return nil, parseErr(ErrMalformedFilter, path, "", "empty document filter")
	case 1:
	default:
		return nil, parseErr(ErrInvalidOperator, path, "", fmt.Sprintf("expected exactly one operator, got %d", len(m)))
	}

	for op, arg := range m {
		switch op {
		case "$contains", "$not_contains":
			text, err := p.text(op, arg, path)
			if err != nil {
				return nil, err
			}
			var folded *regexp.Regexp
			if p.opts.caseInsensitive {
				folded = foldedLiteral(text)
			}
			if op == "$contains" {
				return &DocContains{Text: text, folded: folded}, nil
			}
			return &DocNotContains{Text: text, folded: folded}, nil
		case "$regex", "$not_regex":
			pattern, ok := arg.(string)
			if !ok {
				return nil, parseErr(ErrTypeMismatch, path, op, fmt.Sprintf("expected a pattern string, got %T", arg))
			}
			re, err := compilePattern(pattern, p.opts.caseInsensitive, path, op)
			if err != nil {
				return nil, err
			}
			if op == "$regex" {
				return &DocRegex{Pattern: pattern, re: re}, nil
			}
			return &DocNotRegex{Pattern: pattern, re: re}, nil
		case "$and", "$or":
			return p.logical(op, arg, path)
		default:
			return nil, parseErr(ErrInvalidOperator, path, op, "unknown document operator")
		}
	}
	panic("unreachable")
}

func (p *documentParser) text(op string, arg any, path string) (string, error) {
	text, ok := arg.(string)
	if !ok {
		return "", parseErr(ErrTypeMismatch, path, op, fmt.Sprintf("expected a string, got %T", arg))
	}
	return text, nil
}

func (p *documentParser) logical(op string, val any, path string) (WhereDocument, error) {
	items, ok := asList(val)
	if !ok {
		return nil, parseErr(ErrMalformedFilter, path, op, fmt.Sprintf("expected a list of document filters, got %T", val))
	}
	if len(items) == 0 {
		return nil, parseErr(ErrEmptyCombinator, path, op, "")
	}

	children := make([]WhereDocument, 0, len(items))
	for i, item := range items {
		itemPath := path + op + "[" + strconv.Itoa(i) + "]"
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, parseErr(ErrMalformedFilter, itemPath, op, fmt.Sprintf("expected a document filter object, got %T", item))
		}
		child, err := p.parse(sub, itemPath)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if op == "$and" {
		return &DocAnd{Children: children}, nil
	}
	return &DocOr{Children: children}, nil
}
