package filter

import (
	"regexp"
	"strings"
)

// WhereDocument is a document predicate: a node of the expression tree built
// from a `where_document` filter.
//
// Every leaf evaluates to false for a record without document text.
type WhereDocument interface {
	// Match evaluates the predicate against a record's document. A nil
	// document means the record has none.
	Match(doc *string) bool
	// Map renders the predicate back into filter configuration form.
	Map() map[string]any
}

// DocContains is a substring test.
type DocContains struct {
	Text string

	folded *regexp.Regexp // set when matching ignores case
}

// Match implements WhereDocument.
func (n *DocContains) Match(doc *string) bool {
	if doc == nil {
		return false
	}
	return containsText(*doc, n.Text, n.folded)
}

// Map implements WhereDocument.
func (n *DocContains) Map() map[string]any {
	return map[string]any{"$contains": n.Text}
}

// DocNotContains is the negated substring test. It is still false for a
// record without document text.
type DocNotContains struct {
	Text string

	folded *regexp.Regexp
}

// Match implements WhereDocument.
func (n *DocNotContains) Match(doc *string) bool {
	if doc == nil {
		return false
	}
	return !containsText(*doc, n.Text, n.folded)
}

// Map implements WhereDocument.
func (n *DocNotContains) Map() map[string]any {
	return map[string]any{"$not_contains": n.Text}
}

func containsText(doc, text string, folded *regexp.Regexp) bool {
	if folded != nil {
		return folded.MatchString(doc)
	}
	return strings.Contains(doc, text)
}

// foldedLiteral matches text anywhere, ignoring case the same way a (?i)
// pattern does.
func foldedLiteral(text string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(text))
}

// DocRegex is true when the pattern matches anywhere in the document.
// Build it with Regex; a zero DocRegex never matches.
type DocRegex struct {
	Pattern string

	re *regexp.Regexp
}

// Match implements WhereDocument.
func (n *DocRegex) Match(doc *string) bool {
	if doc == nil || n.re == nil {
		return false
	}
	return n.re.MatchString(*doc)
}

// Map implements WhereDocument.
func (n *DocRegex) Map() map[string]any {
	return map[string]any{"$regex": n.Pattern}
}

// DocNotRegex is true when the pattern matches nowhere in the document.
// Build it with NotRegex; a zero DocNotRegex never matches.
type DocNotRegex struct {
	Pattern string

	re *regexp.Regexp
}

// Match implements WhereDocument.
func (n *DocNotRegex) Match(doc *string) bool {
	if doc == nil || n.re == nil {
		return false
	}
	return !n.re.MatchString(*doc)
}

// Map implements WhereDocument.
func (n *DocNotRegex) Map() map[string]any {
	return map[string]any{"$not_regex": n.Pattern}
}

// DocAnd is true iff all children are true.
type DocAnd struct {
	Children []WhereDocument
}

// Match implements WhereDocument.
func (n *DocAnd) Match(doc *string) bool {
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if !c.Match(doc) {
			return false
		}
	}
	return true
}

// Map implements WhereDocument.
func (n *DocAnd) Map() map[string]any {
	return map[string]any{"$and": docChildMaps(n.Children)}
}

// DocOr is true iff any child is true.
type DocOr struct {
	Children []WhereDocument
}

// Match implements WhereDocument.
func (n *DocOr) Match(doc *string) bool {
	for _, c := range n.Children {
		if c.Match(doc) {
			return true
		}
	}
	return false
}

// Map implements WhereDocument.
func (n *DocOr) Map() map[string]any {
	return map[string]any{"$or": docChildMaps(n.Children)}
}

func docChildMaps(children []WhereDocument) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = c.Map()
	}
	return out
}

// TextContains returns a case-sensitive DocContains node.
func TextContains(text string) *DocContains { return &DocContains{Text: text} }

// TextNotContains returns a case-sensitive DocNotContains node.
func TextNotContains(text string) *DocNotContains { return &DocNotContains{Text: text} }

// Regex compiles pattern into a DocRegex node.
func Regex(pattern string) (*DocRegex, error) {
	re, err := compilePattern(pattern, false, "", "$regex")
	if err != nil {
		return nil, err
	}
	return &DocRegex{Pattern: pattern, re: re}, nil
}

// NotRegex compiles pattern into a DocNotRegex node.
func NotRegex(pattern string) (*DocNotRegex, error) {
	re, err := compilePattern(pattern, false, "", "$not_regex")
	if err != nil {
		return nil, err
	}
	return &DocNotRegex{Pattern: pattern, re: re}, nil
}

// AllText returns a DocAnd node.
func AllText(children ...WhereDocument) *DocAnd { return &DocAnd{Children: children} }

// AnyText returns a DocOr node.
func AnyText(children ...WhereDocument) *DocOr { return &DocOr{Children: children} }

func compilePattern(pattern string, fold bool, path, op string) (*regexp.Regexp, error) {
	expr := pattern
	if fold {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, parseErr(ErrInvalidPattern, path, op, err.Error())
	}
	return re, nil
}
