package model

import (
	"testing"

	"github.com/hupe1980/vecfilter/metadata"
	"github.com/stretchr/testify/assert"
)

func TestRecordBuilder(t *testing.T) {
	rec := NewRecord("doc-1").
		WithMetadata("category", metadata.String("ml")).
		WithMetadata("year", metadata.Int(2024)).
		WithDocument("Machine learning is transforming healthcare diagnostics.").
		Build()

	assert.Equal(t, "doc-1", rec.ID)
	assert.Equal(t, metadata.String("ml"), rec.Metadata["category"])
	assert.True(t, rec.HasDocument())
	assert.Equal(t, "Machine learning is transforming healthcare diagnostics.", rec.Text())
	assert.Equal(t, "Record(doc-1, fields=2, document=true)", rec.String())
}

func TestRecordWithoutDocument(t *testing.T) {
	rec := NewRecord("doc-2").Build()
	assert.False(t, rec.HasDocument())
	assert.Equal(t, "", rec.Text())
	assert.Nil(t, rec.Metadata)

	empty := NewRecord("doc-3").WithDocument("").Build()
	assert.True(t, empty.HasDocument())
}

func TestWithMetadataDocumentCopies(t *testing.T) {
	src := metadata.Document{"n": metadata.Int(1)}
	rec := NewRecord("a").WithMetadataDocument(src).Build()
	src["n"] = metadata.Int(2)
	assert.Equal(t, metadata.Int(1), rec.Metadata["n"])
}

func TestIDs(t *testing.T) {
	recs := []Record{{ID: "b"}, {ID: "a"}, {ID: "c"}}
	assert.Equal(t, []string{"b", "a", "c"}, IDs(recs))
	assert.Empty(t, IDs(nil))
}

func TestBuildDetachesFromBuilder(t *testing.T) {
	b := NewRecord("doc-1").
		WithMetadata("category", metadata.String("ml")).
		WithDocument("first")
	first := b.Build()

	b.WithMetadata("category", metadata.String("quantum")).
		WithMetadata("year", metadata.Int(2023)).
		WithDocument("second")
	second := b.Build()

	assert.Equal(t, metadata.String("ml"), first.Metadata["category"])
	assert.NotContains(t, first.Metadata, "year")
	assert.Equal(t, "first", first.Text())

	assert.Equal(t, metadata.String("quantum"), second.Metadata["category"])
	assert.Equal(t, metadata.Int(2023), second.Metadata["year"])
	assert.Equal(t, "second", second.Text())
}
