package filter

import (
	"testing"

	"github.com/hupe1980/vecfilter/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWhereJSON(t *testing.T) {
	w, err := ParseWhereJSON([]byte(`{"citations": {"$gt": 100}}`))
	require.NoError(t, err)
	assert.Equal(t, Gt("citations", metadata.Int(100)), w)

	w, err = ParseWhereJSON([]byte(`{"score": {"$lte": 0.75}}`))
	require.NoError(t, err)
	assert.Equal(t, Lte("score", metadata.Float(0.75)), w)

	for _, empty := range []string{"", "  ", "null"} {
		w, err = ParseWhereJSON([]byte(empty))
		require.NoError(t, err)
		assert.Nil(t, w)
	}

	_, err = ParseWhereJSON([]byte(`{"category": `))
	assert.ErrorIs(t, err, ErrMalformedFilter)

	_, err = ParseWhereJSON([]byte(`["category"]`))
	assert.ErrorIs(t, err, ErrMalformedFilter)

	_, err = ParseWhereJSON([]byte(`{"category": {"$bogus": "ml"}}`))
	assert.ErrorIs(t, err, ErrInvalidOperator)

	_, err = ParseWhereJSON([]byte(`{"$and": []}`))
	assert.ErrorIs(t, err, ErrEmptyCombinator)
}

func TestParseWhereDocumentJSON(t *testing.T) {
	d, err := ParseWhereDocumentJSON([]byte(`{"$contains": "learning"}`))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, matching(d))

	_, err = ParseWhereDocumentJSON([]byte(`{"$regex": "(["}`))
	assert.ErrorIs(t, err, ErrInvalidPattern)

	d, err = ParseWhereDocumentJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestFormat(t *testing.T) {
	w := AllOf(
		Gte("year", metadata.Int(2023)),
		NewIn("category", metadata.String("ml"), metadata.String("quantum")),
	)
	assert.Equal(t, `{"$and":[{"year":{"$gte":2023}},{"category":{"$in":["ml","quantum"]}}]}`, Format(w))
	assert.Equal(t, "null", Format(nil))

	assert.Equal(t, `{"$contains":"learning"}`, FormatDocument(TextContains("learning")))
	assert.Equal(t, "null", FormatDocument(nil))

	reparsed, err := ParseWhereJSON([]byte(Format(w)))
	require.NoError(t, err)
	assert.Equal(t, Format(w), Format(reparsed))
}
