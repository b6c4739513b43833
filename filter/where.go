package filter

import (
	"github.com/hupe1980/vecfilter/metadata"
)

// Op is a metadata comparison operator.
type Op string

const (
	OpEq  Op = "$eq"
	OpNe  Op = "$ne"
	OpGt  Op = "$gt"
	OpGte Op = "$gte"
	OpLt  Op = "$lt"
	OpLte Op = "$lte"
)

// Ordering reports whether op is one of $gt, $gte, $lt, $lte.
func (op Op) Ordering() bool {
	switch op {
	case OpGt, OpGte, OpLt, OpLte:
		return true
	default:
		return false
	}
}

// Where is a metadata predicate: a node of the expression tree built from a
// `where` filter.
//
// Implementations are immutable and safe for concurrent use.
type Where interface {
	// Match evaluates the predicate against one record's metadata.
	Match(doc metadata.Document) bool
	// Map renders the predicate back into filter configuration form.
	Map() map[string]any
}

// Compare tests a single field against a literal.
type Compare struct {
	Key   string
	Op    Op
	Value metadata.Value
}

// Match implements Where.
//
// An absent key never satisfies a comparison, except $ne which is true for
// records lacking the key.
func (c *Compare) Match(doc metadata.Document) bool {
	v, ok := doc[c.Key]
	if !ok {
		return c.Op == OpNe
	}

	switch c.Op {
	case OpEq:
		return metadata.Equal(v, c.Value)
	case OpNe:
		return !metadata.Equal(v, c.Value)
	}

	cmp, ok := metadata.CompareNumbers(v, c.Value)
	if !ok {
		return false
	}
	switch c.Op {
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	default:
		return false
	}
}

// Map implements Where.
func (c *Compare) Map() map[string]any {
	return map[string]any{c.Key: map[string]any{string(c.Op): c.Value.Any()}}
}

// valueSet is a membership index over the string and bool filter literals.
// Numbers always go through metadata.Equal so that $in agrees with $eq.
type valueSet map[string]struct{}

func newValueSet(values []metadata.Value) valueSet {
	s := make(valueSet, len(values))
	for _, v := range values {
		if !v.IsNumber() {
			s[v.Key()] = struct{}{}
		}
	}
	return s
}

func contains(set valueSet, values []metadata.Value, v metadata.Value) bool {
	if set != nil && !v.IsNumber() {
		_, ok := set[v.Key()]
		return ok
	}
	for _, item := range values {
		if metadata.Equal(item, v) {
			return true
		}
	}
	return false
}

func valuesAny(values []metadata.Value) []any {
	out := make([]any, len(values))
	for i := range values {
		out[i] = values[i].Any()
	}
	return out
}

// In tests set membership ($in). An absent key evaluates to false.
type In struct {
	Key    string
	Values []metadata.Value

	set valueSet
}

// NewIn builds an In node with a prebuilt membership index.
func NewIn(key string, values ...metadata.Value) *In {
	return &In{Key: key, Values: values, set: newValueSet(values)}
}

// Match implements Where.
func (n *In) Match(doc metadata.Document) bool {
	v, ok := doc[n.Key]
	if !ok {
		return false
	}
	return contains(n.set, n.Values, v)
}

// Map implements Where.
func (n *In) Map() map[string]any {
	return map[string]any{n.Key: map[string]any{"$in": valuesAny(n.Values)}}
}

// NotIn tests set exclusion ($nin). An absent key evaluates to true.
type NotIn struct {
	Key    string
	Values []metadata.Value

	set valueSet
}

// NewNotIn builds a NotIn node with a prebuilt membership index.
func NewNotIn(key string, values ...metadata.Value) *NotIn {
	return &NotIn{Key: key, Values: values, set: newValueSet(values)}
}

// Match implements Where.
func (n *NotIn) Match(doc metadata.Document) bool {
	v, ok := doc[n.Key]
	if !ok {
		return true
	}
	return !contains(n.set, n.Values, v)
}

// Map implements Where.
func (n *NotIn) Map() map[string]any {
	return map[string]any{n.Key: map[string]any{"$nin": valuesAny(n.Values)}}
}

// Contains tests a list-valued field for an element, or a string field for
// a substring ($contains on metadata). An absent key evaluates to false.
type Contains struct {
	Key   string
	Value metadata.Value
}

// Match implements Where.
func (n *Contains) Match(doc metadata.Document) bool {
	v, ok := doc[n.Key]
	if !ok {
		return false
	}
	return metadata.Contains(v, n.Value)
}

// Map implements Where.
func (n *Contains) Map() map[string]any {
	return map[string]any{n.Key: map[string]any{"$contains": n.Value.Any()}}
}

// NotContains is the negation of Contains. An absent key evaluates to true.
type NotContains struct {
	Key   string
	Value metadata.Value
}

// Match implements Where.
func (n *NotContains) Match(doc metadata.Document) bool {
	v, ok := doc[n.Key]
	if !ok {
		return true
	}
	return !metadata.Contains(v, n.Value)
}

// Map implements Where.
func (n *NotContains) Map() map[string]any {
	return map[string]any{n.Key: map[string]any{"$not_contains": n.Value.Any()}}
}

// And is true iff all children are true. Evaluation short-circuits.
//
// An And without children is invalid: Validate, Evaluate and candidate.Select
// reject it with ErrEmptyCombinator. Match alone does not check.
type And struct {
	Children []Where
}

// Match implements Where.
func (n *And) Match(doc metadata.Document) bool {
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

// Map implements Where.
func (n *And) Map() map[string]any {
	return map[string]any{"$and": childMaps(n.Children)}
}

// Or is true iff any child is true. Evaluation short-circuits.
//
// An Or without children is invalid, see And.
type Or struct {
	Children []Where
}

// Match implements Where.
func (n *Or) Match(doc metadata.Document) bool {
	for _, c := range n.Children {
		if c.Match(doc) {
			return true
		}
	}
	return false
}

// Map implements Where.
func (n *Or) Map() map[string]any {
	return map[string]any{"$or": childMaps(n.Children)}
}

func childMaps(children []Where) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = c.Map()
	}
	return out
}

// Eq returns a Compare node for key == v.
func Eq(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpEq, Value: v} }

// Ne returns a Compare node for key != v.
func Ne(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpNe, Value: v} }

// Gt returns a Compare node for key > v.
func Gt(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpGt, Value: v} }

// Gte returns a Compare node for key >= v.
func Gte(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpGte, Value: v} }

// Lt returns a Compare node for key < v.
func Lt(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpLt, Value: v} }

// Lte returns a Compare node for key <= v.
func Lte(key string, v metadata.Value) *Compare { return &Compare{Key: key, Op: OpLte, Value: v} }

// AllOf returns an And node.
func AllOf(children ...Where) *And { return &And{Children: children} }

// AnyOf returns an Or node.
func AnyOf(children ...Where) *Or { return &Or{Children: children} }
