package filter

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []*string{
	ptr("Machine learning is transforming healthcare diagnostics."),
	ptr("Quantum computing may revolutionize cryptography."),
	ptr("Renewable energy adoption is accelerating worldwide."),
	ptr("Deep learning models require large datasets for training."),
}

func matching(d WhereDocument) []int {
	var out []int
	for i, doc := range corpus {
		if d.Match(doc) {
			out = append(out, i+1)
		}
	}
	return out
}

func TestDocumentMatch(t *testing.T) {
	mustRegex := func(p string) *DocRegex {
		r, err := Regex(p)
		require.NoError(t, err)
		return r
	}
	mustNotRegex := func(p string) *DocNotRegex {
		r, err := NotRegex(p)
		require.NoError(t, err)
		return r
	}

	assert.Equal(t, []int{1, 4}, matching(TextContains("learning")))
	assert.Equal(t, []int{2, 3}, matching(TextNotContains("learning")))
	assert.Empty(t, matching(TextContains("Learning")), "case-sensitive by default")
	assert.Equal(t, []int{4}, matching(mustRegex("learning.*training")))
	assert.Equal(t, []int{1, 3, 4}, matching(mustNotRegex("quantum.*crypto|Quantum.*crypto")))
	assert.Equal(t, []int{4}, matching(AllText(TextContains("learning"), TextNotContains("healthcare"))))
	assert.Equal(t, []int{2, 3}, matching(AnyText(TextContains("Quantum"), TextContains("energy"))))
	assert.Equal(t, []int{1, 2}, matching(mustRegex(`\w+ (learning|computing|energy) (is|may)`)))
}

func TestDocumentAbsent(t *testing.T) {
	r, err := Regex("x")
	require.NoError(t, err)
	nr, err := NotRegex("x")
	require.NoError(t, err)

	for _, d := range []WhereDocument{TextContains("x"), TextNotContains("x"), r, nr} {
		assert.False(t, d.Match(nil), "%T", d)
	}

	assert.True(t, TextNotContains("x").Match(ptr("")))
	assert.True(t, TextContains("").Match(ptr("")))
}

func TestZeroRegexNeverMatches(t *testing.T) {
	assert.False(t, (&DocRegex{Pattern: ".*"}).Match(ptr("anything")))
	assert.False(t, (&DocNotRegex{Pattern: "x"}).Match(ptr("anything")))
	assert.ErrorIs(t, ValidateDocument(&DocRegex{Pattern: ".*"}), ErrInvalidPattern)
}

func TestParseWhereDocument(t *testing.T) {
	t.Run("nil means no filter", func(t *testing.T) {
		d, err := ParseWhereDocument(nil)
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("contains", func(t *testing.T) {
		d, err := ParseWhereDocument(map[string]any{"$contains": "learning"})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4}, matching(d))
	})

	t.Run("nested", func(t *testing.T) {
		d, err := ParseWhereDocument(map[string]any{
			"$or": []any{
				map[string]any{"$and": []any{
					map[string]any{"$contains": "learning"},
					map[string]any{"$not_contains": "healthcare"},
				}},
				map[string]any{"$regex": "^Quantum"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, matching(d))
		assert.NoError(t, ValidateDocument(d))
	})

	t.Run("case insensitive", func(t *testing.T) {
		d, err := ParseWhereDocument(map[string]any{"$contains": "LEARNING"}, WithCaseInsensitive())
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4}, matching(d))

		d, err = ParseWhereDocument(map[string]any{"$regex": "^deep"}, WithCaseInsensitive())
		require.NoError(t, err)
		assert.Equal(t, []int{4}, matching(d))

		d, err = ParseWhereDocument(map[string]any{"$not_contains": "QUANTUM"}, WithCaseInsensitive())
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 4}, matching(d))
	})

	t.Run("map round trip", func(t *testing.T) {
		cfg := map[string]any{"$and": []any{
			map[string]any{"$contains": "learning"},
			map[string]any{"$not_regex": "health"},
		}}
		d, err := ParseWhereDocument(cfg)
		require.NoError(t, err)
		assert.Equal(t, cfg, d.Map())
	})
}

func TestParseWhereDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		want error
		path string
	}{
		{"empty", map[string]any{}, ErrMalformedFilter, ""},
		{"two operators", map[string]any{"$contains": "a", "$regex": "b"}, ErrInvalidOperator, ""},
		{"unknown operator", map[string]any{"$startswith": "a"}, ErrInvalidOperator, ""},
		{"field key", map[string]any{"category": "ml"}, ErrInvalidOperator, ""},
		{"contains non string", map[string]any{"$contains": 1}, ErrTypeMismatch, ""},
		{"regex non string", map[string]any{"$regex": true}, ErrTypeMismatch, ""},
		{"invalid regex", map[string]any{"$regex": "learning(["}, ErrInvalidPattern, ""},
		{"invalid not regex", map[string]any{"$not_regex": "*"}, ErrInvalidPattern, ""},
		{"empty and", map[string]any{"$and": []any{}}, ErrEmptyCombinator, ""},
		{"or not list", map[string]any{"$or": "x"}, ErrMalformedFilter, ""},
		{"nested invalid regex", map[string]any{"$and": []any{
			map[string]any{"$contains": "a"},
			map[string]any{"$regex": "(("},
		}}, ErrInvalidPattern, "$and[1]"},
		{"nested non map", map[string]any{"$or": []any{"a"}}, ErrMalformedFilter, "$or[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseWhereDocument(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.want)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.path, pe.Path)
		})
	}
}

func TestCaseInsensitiveContainsFoldsLikeRegex(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		text string
	}{
		{"ascii", "Deep Learning", "LEARNING"},
		{"greek", "ΣΊΣΥΦΟΣ", "σίσυφος"},
		{"kelvin sign", "\u212a", "k"},
		{"dotted capital i", "İ", "i"},
		{"metacharacters", "costs $5.00 (net)", "$5.00 (NET)"},
		{"missing", "quantum", "learning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contains, err := ParseWhereDocument(map[string]any{"$contains": tt.text}, WithCaseInsensitive())
			require.NoError(t, err)
			regex, err := ParseWhereDocument(map[string]any{"$regex": regexp.QuoteMeta(tt.text)}, WithCaseInsensitive())
			require.NoError(t, err)
			notContains, err := ParseWhereDocument(map[string]any{"$not_contains": tt.text}, WithCaseInsensitive())
			require.NoError(t, err)

			want := regex.Match(&tt.doc)
			assert.Equal(t, want, contains.Match(&tt.doc))
			assert.Equal(t, !want, notContains.Match(&tt.doc))
		})
	}

	t.Run("dotted capital i does not fold to i", func(t *testing.T) {
		doc := "İ"
		d, err := ParseWhereDocument(map[string]any{"$contains": "i"}, WithCaseInsensitive())
		require.NoError(t, err)
		assert.False(t, d.Match(&doc))
	})

	t.Run("map keeps the original text", func(t *testing.T) {
		d, err := ParseWhereDocument(map[string]any{"$contains": "LEARNING"}, WithCaseInsensitive())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"$contains": "LEARNING"}, d.Map())
	})
}
